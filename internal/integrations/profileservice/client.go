package profileservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// Client клиент для работы с ProfileService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMentor получает профиль ментора со ставкой.
// Пользователь без роли mentor или без ставки считается ненайденным.
func (c *Client) GetMentor(ctx context.Context, mentorID int64) (*domain.MentorProfile, error) {
	url := fmt.Sprintf("%s/internal/mentors/%d", c.baseURL, mentorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ProfileService request failed for mentor_id=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrMentorNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var mentor Mentor
	if err := json.NewDecoder(resp.Body).Decode(&mentor); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	role, err := domain.ParseRole(mentor.Role)
	if err != nil {
		c.log.Warn("ProfileService returned unknown role=%q for user_id=%d", mentor.Role, mentorID)
		return nil, ErrMentorNotFound
	}

	profile := &domain.MentorProfile{
		UserID:      mentor.UserID,
		Role:        role,
		DisplayName: mentor.DisplayName,
		HourlyRate:  mentor.HourlyRate,
	}
	if !profile.IsBookable() {
		c.log.Info("User id=%d is not a bookable mentor (role=%s)", mentorID, role)
		return nil, ErrMentorNotFound
	}

	return profile, nil
}
