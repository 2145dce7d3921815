// cmd/client/cmd/scan/scan.go
package scan

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scanpass/cmd/client/cmd/types"
)

var (
	autoStart bool
	exportDir string
)

var ScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Интерактивный сканер QR-кодов",
	Long: `Запускает интерактивный сканер.

Каждое успешное распознавание создает учетную запись, списывает один кредит
и добавляет запись в журнал. Введите help, чтобы увидеть список команд.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if !app.IsAuthenticated() {
			return fmt.Errorf("требуется вход. Выполните: scanpass auth login")
		}

		s := app.NewScanner()
		defer s.Wait()
		defer s.Close()

		ctx := cmd.Context()
		if autoStart {
			startCamera(ctx, s)
		}

		runREPL(ctx, s, bufio.NewScanner(os.Stdin), exportDir)
		return nil
	},
}

func init() {
	ScanCmd.Flags().BoolVar(&autoStart, "start", true, "сразу открыть камеру")
	ScanCmd.Flags().StringVar(&exportDir, "export-dir", ".", "каталог для выгрузки результатов")
}
