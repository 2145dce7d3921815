package history

import (
	"github.com/spf13/cobra"
)

// HistoryCmd - родительская команда для операций с журналом сканирований
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Журнал сканирований",
	Long:  `Просмотр и очистка журнала сканирований текущего пользователя.`,
}
