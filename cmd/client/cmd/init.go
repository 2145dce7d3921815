// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scanpass/cmd/client/cmd/auth"
	"scanpass/cmd/client/cmd/history"
	"scanpass/cmd/client/cmd/scan"
	"scanpass/cmd/client/cmd/types"
	"scanpass/internal/app/client/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Проверить настройку клиента ScanPass",
	Long: `Команда init выполняет первоначальную проверку клиента:
	1. Создает директорию для хранения данных и журнала
	2. Применяет миграции локального хранилища
	3. Проверяет соединение с сервером (для decoder=http)`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		cfg := app.Config()
		ok := color.New(color.FgGreen).SprintFunc()
		warn := color.New(color.FgYellow).SprintFunc()

		fmt.Println("=== Инициализация ScanPass ===")
		fmt.Println()
		fmt.Printf("Директория:  %s\n", cfg.ConfigDir)
		fmt.Printf("Хранилище:   %s\n", cfg.StorageDriver)
		if cfg.StorageDriver == config.StorageSQLite {
			fmt.Printf("База данных: %s\n", cfg.DataPath)
		}
		fmt.Printf("Журнал:      %s\n", cfg.LogPath)
		fmt.Printf("Камера:      %s\n", cfg.CameraDriver)
		fmt.Printf("Распознавание: %s\n", cfg.Decoder)
		fmt.Println(ok("✓ Хранилище готово"))

		if cfg.Decoder == config.DecoderHTTP {
			fmt.Println("Проверка соединения с сервером...")
			if err := app.CheckConnection(); err != nil {
				fmt.Println(warn(fmt.Sprintf("⚠️  Не удалось подключиться к серверу: %v", err)))
				fmt.Println("Сканирование будет недоступно, пока сервер не ответит.")
			} else {
				fmt.Println(ok("✓ Соединение с сервером установлено"))
			}
		}

		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Войдите в систему: scanpass auth login")
		fmt.Println("2. Запустите сканер: scanpass scan")
		fmt.Println("3. Просмотрите журнал: scanpass history list")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	rootCmd.AddCommand(scan.ScanCmd)

	rootCmd.AddCommand(history.HistoryCmd)
	history.HistoryCmd.AddCommand(history.ListCmd)
	history.HistoryCmd.AddCommand(history.ClearCmd)
}
