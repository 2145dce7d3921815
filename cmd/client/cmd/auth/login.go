// cmd/client/cmd/auth/login.go
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scanpass/cmd/client/cmd/types"
	"scanpass/internal/domain/user"
)

var loginName string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему ScanPass",
	Long: `Вход по логину и паролю.

Сессия сохраняется локально и восстанавливается при следующем запуске.
Демо-учетные записи: admin/admin123, demo/demo123, user/user123.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		login := loginName
		if login == "" {
			fmt.Print("Логин: ")
			_, _ = fmt.Scanln(&login)
		}
		login = strings.TrimSpace(login)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		id, err := app.Login(cmd.Context(), login, string(password))
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				return fmt.Errorf("неверный логин или пароль")
			}
			return fmt.Errorf("ошибка входа: %w", err)
		}

		fmt.Println()
		color.Green("✅ Добро пожаловать, %s!", id.Name)
		fmt.Printf("Баланс: %d кредитов\n", id.Balance)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginName, "username", "u", "", "логин пользователя")
}
