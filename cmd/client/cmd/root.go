// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scanpass/cmd/client/cmd/types"
	"scanpass/internal/app/client"
	"scanpass/internal/app/client/config"
)

var (
	cfgFile   string
	serverURL string
	app       *client.App
	logFile   io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "scanpass",
	Short: "ScanPass - сканер QR-кодов учетных записей",
	Long: `ScanPass - клиент для сканирования QR-кодов и создания учетных записей.

Каждое успешное сканирование списывает один кредит с баланса пользователя
и сохраняется в локальном журнале. Сессия и журнал переживают перезапуск.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if cerr := shutdown(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log, closer, err := client.NewLogger(cfg)
	if err != nil {
		return err
	}
	logFile = closer

	app, err = client.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func shutdown() error {
	var errs []error
	if app != nil {
		errs = append(errs, app.Close())
	}
	if logFile != nil {
		errs = append(errs, logFile.Close())
	}
	return errors.Join(errs...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (YAML)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера распознавания")
}
