package balance

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

func TestCreditPending_UpsertsIncrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	payout := types.NewMoneyFromMinor(4000)
	mock.ExpectExec(`INSERT INTO mentor_balances \(mentor_id,total_earned,available_balance,pending_balance,withdrawn\) VALUES .* ON CONFLICT \(mentor_id\) DO UPDATE SET pending_balance = mentor_balances.pending_balance \+ EXCLUDED.pending_balance, total_earned = mentor_balances.total_earned \+ EXCLUDED.total_earned`).
		WithArgs(int64(2), payout, types.Money(0), payout, types.Money(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRepository(db).CreditPending(context.Background(), 2, payout))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleasePending(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "released", rowsAffected: 1},
		{name: "pending balance too small", rowsAffected: 0, wantErr: ErrInsufficientPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			amount := types.NewMoneyFromMinor(4000)
			mock.ExpectExec(`UPDATE mentor_balances SET pending_balance = pending_balance - \$1, available_balance = available_balance \+ \$2, .* WHERE mentor_id = \$3 AND pending_balance >= \$4`).
				WithArgs(amount, amount, int64(2), amount).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err = NewRepository(db).ReleasePending(context.Background(), 2, amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
