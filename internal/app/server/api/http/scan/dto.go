package scan

import (
	domainscan "scanpass/internal/domain/scan"
)

// Input - запрос на распознавание кадра
type Input struct {
	RequestID string `header:"X-Request-ID" doc:"Client request id"`
	Body      struct {
		RequestID string `json:"requestId,omitempty" maxLength:"64" doc:"Client request id, used when the header is absent"`
	}
}

// Output - созданная учетная запись
type Output struct {
	Body domainscan.Result
}
