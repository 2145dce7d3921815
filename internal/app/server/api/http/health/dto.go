package health

// StatusInput - запрос состояния сервиса распознавания, без параметров
type StatusInput struct{}

type StatusOutput struct {
	Body Status
}

// Status - состояние бэкенда сканирования и реестра аккаунтов
type Status struct {
	Scan     string `json:"scan" example:"ok" enum:"ok,degraded" doc:"Scan backend status; degraded when the account registry does not answer"`
	Accounts string `json:"accounts,omitempty" example:"ok" doc:"Account registry status or ping error; omitted when scans are not persisted"`
}
