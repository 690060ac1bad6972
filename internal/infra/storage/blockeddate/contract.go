package blockeddate

import "github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor
