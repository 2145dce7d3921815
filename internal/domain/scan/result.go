package scan

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// TimestampLayout - ISO-8601 в UTC с миллисекундами
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Result - учетная запись, созданная успешным сканированием
type Result struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AccountID string `json:"accountId"`
	Timestamp string `json:"timestamp"`
}

// Summary - текстовая выгрузка результата.
// scannedByName добавляется последней строкой, если задан.
func (r Result) Summary(scannedByName string) string {
	var b strings.Builder
	b.WriteString("Account Created Successfully\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Email: %s\n", r.Email)
	fmt.Fprintf(&b, "Account ID: %s\n", r.AccountID)
	fmt.Fprintf(&b, "Created At: %s\n", r.Timestamp)
	if scannedByName != "" {
		fmt.Fprintf(&b, "Scanned By: %s\n", scannedByName)
	}
	return b.String()
}

// FileName - имя файла для выгрузки результата
func (r Result) FileName() string {
	return "account-" + r.AccountID + ".txt"
}

// AccountIDs выдает идентификаторы вида ACC-<unix ms>.
// Если часы не продвинулись, значение увеличивается на единицу.
type AccountIDs struct {
	mu   sync.Mutex
	last int64
}

func (g *AccountIDs) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("ACC-%d", ms)
}

var processIDs AccountIDs

// NextAccountID - общий для процесса генератор
func NextAccountID(now time.Time) string {
	return processIDs.Next(now)
}
