// cmd/client/cmd/scan/repl.go
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"scanpass/internal/domain/camera"
	domainscan "scanpass/internal/domain/scan"
)

// Точки подмены вывода для тестов
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// scanner - то, что REPL использует от сканера
type scanner interface {
	StartCamera(ctx context.Context) error
	CaptureAndScan(ctx context.Context) (<-chan struct{}, error)
	Reset()
	StopCamera()
	SwitchFacing(ctx context.Context) (camera.Facing, error)
	SetFacing(ctx context.Context, f camera.Facing) (camera.Facing, error)
	View() domainscan.View
}

const helpText = `Команды:
  start              открыть камеру
  capture            распознать QR-код
  reset              сканировать снова
  stop               закрыть камеру
  switch             переключить камеру (только мобильные устройства)
  facing front|back  выбрать камеру
  status             текущее состояние
  export             сохранить последний результат в файл
  exit | quit        выйти`

// runREPL читает команды построчно, пока не встретит exit или конец ввода
func runREPL(ctx context.Context, s scanner, in *bufio.Scanner, dir string) {
	for {
		printFn(prompt(s.View()))
		if !in.Scan() {
			printlnFn()
			return
		}
		parts := strings.Fields(in.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn(helpText)

		case "start":
			startCamera(ctx, s)

		case "capture", "c":
			capture(ctx, s)

		case "reset":
			s.Reset()
			printStatus(s.View())

		case "stop":
			s.StopCamera()
			printlnFn("Камера закрыта")

		case "switch":
			f, err := s.SwitchFacing(ctx)
			if err != nil {
				printError(err)
				continue
			}
			printlnFn("Камера:", facingLabel(f))

		case "facing":
			if len(parts) < 2 {
				printlnFn("Использование: facing front|back")
				continue
			}
			want, err := camera.ParseFacing(parts[1])
			if err != nil {
				printlnFn("Неизвестное направление:", parts[1])
				continue
			}
			f, err := s.SetFacing(ctx, want)
			if err != nil {
				printError(err)
				continue
			}
			printlnFn("Камера:", facingLabel(f))

		case "status":
			printStatus(s.View())

		case "export":
			path, err := export(s.View(), dir)
			if err != nil {
				printError(err)
				continue
			}
			printlnFn(color.GreenString("✓ Сохранено: %s", path))

		case "exit", "quit":
			printlnFn("До свидания!")
			return

		default:
			printlnFn("Неизвестная команда:", parts[0])
		}
	}
}

func prompt(v domainscan.View) string {
	return fmt.Sprintf("scan [%s | %d] > ", v.State, v.Balance)
}

func startCamera(ctx context.Context, s scanner) {
	if err := s.StartCamera(ctx); err != nil {
		printError(err)
		return
	}
	v := s.View()
	printlnFn(fmt.Sprintf("Камера открыта: %s (%s)", facingLabel(v.Facing), v.DeviceClass))
	printBalanceWarning(v)
}

func capture(ctx context.Context, s scanner) {
	done, err := s.CaptureAndScan(ctx)
	if err != nil {
		printError(err)
		return
	}

	printlnFn("Распознавание...")
	select {
	case <-done:
	case <-ctx.Done():
		return
	}

	v := s.View()
	switch v.State {
	case domainscan.StateSuccess:
		if v.Result != nil {
			printlnFn(color.GreenString("%s", v.Result.Summary(v.UserName)))
		}
		printlnFn(fmt.Sprintf("Осталось кредитов: %d", v.Balance))
		printBalanceWarning(v)
	case domainscan.StateError:
		printlnFn(color.RedString("✗ %s", v.Error))
	default:
		// попытка отброшена (камера закрыта или сессия сменилась)
		printlnFn("Результат сканирования отброшен")
	}
}

func export(v domainscan.View, dir string) (string, error) {
	if v.Result == nil {
		return "", errNoResult
	}
	path := filepath.Join(dir, v.Result.FileName())
	if err := os.WriteFile(path, []byte(v.Result.Summary(v.UserName)), 0o644); err != nil {
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}
	return path, nil
}

var errNoResult = errors.New("нет результата для выгрузки")

func printStatus(v domainscan.View) {
	printlnFn("Состояние:", v.State)
	if v.Authenticated {
		printlnFn(fmt.Sprintf("Пользователь: %s | Баланс: %d", v.UserName, v.Balance))
	}
	cam := "закрыта"
	if v.CameraActive {
		cam = "открыта"
	}
	printlnFn(fmt.Sprintf("Камера: %s, %s (%s)", cam, facingLabel(v.Facing), v.DeviceClass))
	if v.CanSwitchFacing {
		printlnFn("Доступно переключение камеры: switch")
	}
	if v.Capturing {
		printlnFn("Идет распознавание...")
	}
	if v.Result != nil {
		printlnFn("Последний результат:", v.Result.AccountID)
	}
	if v.Error != "" {
		printlnFn(color.RedString("Ошибка: %s", v.Error))
	}
	printBalanceWarning(v)
}

func printBalanceWarning(v domainscan.View) {
	switch {
	case v.NoCredits:
		printlnFn(color.RedString("⚠️  Кредиты закончились. Пополните баланс, чтобы продолжить сканирование."))
	case v.LowBalance:
		printlnFn(color.YellowString("⚠️  Мало кредитов: %d", v.Balance))
	}
}

func printError(err error) {
	printlnFn(color.RedString("✗ %s", describe(err)))
}

func describe(err error) string {
	switch {
	case errors.Is(err, domainscan.ErrNotScanning):
		return "Камера не открыта. Выполните: start"
	case errors.Is(err, domainscan.ErrCaptureInProgress):
		return "Распознавание уже выполняется"
	case errors.Is(err, camera.ErrSwitchUnsupported):
		return "Переключение камеры доступно только на мобильных устройствах"
	case errors.Is(err, errNoResult):
		return err.Error()
	case errors.Is(err, domainscan.ErrDisposed):
		return "Сканер закрыт"
	}
	return domainscan.Message(err)
}

func facingLabel(f camera.Facing) string {
	if f == camera.FacingBack {
		return "основная"
	}
	return "фронтальная"
}
