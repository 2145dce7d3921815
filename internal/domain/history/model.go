package history

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"scanpass/internal/domain/scan"
)

// Entry - запись журнала: результат сканирования и кто его выполнил
type Entry struct {
	ID string `json:"id"`
	scan.Result
	Avatar        string `json:"avatar,omitempty"`
	ScannedBy     string `json:"scannedBy"`
	ScannedByName string `json:"scannedByName"`
}

// FromCaptured строит запись журнала из результата сканера
func FromCaptured(c scan.Captured) Entry {
	return Entry{
		ID:            c.AccountID,
		Result:        c.Result,
		ScannedBy:     c.ScannedBy,
		ScannedByName: c.ScannedByName,
	}
}

// Initials - первые буквы слов имени, для аватара-заглушки
func (e Entry) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(e.Name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
