package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"scanpass/internal/app/client/config"
	"scanpass/internal/domain/camera"
	"scanpass/internal/domain/history"
	"scanpass/internal/domain/scan"
	"scanpass/internal/domain/session"
	"scanpass/internal/domain/user"
	"scanpass/internal/infrastructure/storage"
	"scanpass/internal/infrastructure/storage/memory"
	"scanpass/internal/infrastructure/storage/redis"
	"scanpass/internal/infrastructure/storage/sqlite"
	"scanpass/internal/utils/logger"
)

// App - корень композиции клиента: владеет хранилищем, сессией, журналом и камерой
type App struct {
	config     *config.Config
	log        *slog.Logger
	kv         storage.KV
	users      *user.Service
	session    *session.Service
	history    *history.Service
	camera     *camera.Session
	decoder    scan.Decoder
	httpClient *httpClient
	mu         sync.Mutex
	closed     bool
}

// Deps позволяет подменить инфраструктуру (в тестах)
type Deps struct {
	KV      storage.KV
	Camera  camera.Capability
	Decoder scan.Decoder
}

// NewLogger открывает файл журнала клиента в каталоге конфигурации.
// Вывод в файл не мешает интерактивному вводу.
func NewLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o700); err != nil {
		return nil, nil, fmt.Errorf("ошибка создания директории журнала: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка открытия журнала: %w", err)
	}
	return logger.NewWithLevel(cfg.Env, cfg.LogLevel, f), f, nil
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	return NewWithDeps(ctx, cfg, log, Deps{})
}

func NewWithDeps(ctx context.Context, cfg *config.Config, log *slog.Logger, deps Deps) (*App, error) {
	if err := os.MkdirAll(cfg.ConfigDir, 0o700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	// Инициализируем HTTP клиент
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	kv := deps.KV
	if kv == nil {
		kv, err = openStorage(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
	}

	accounts, err := user.NewStaticRepository(user.DemoAccounts, user.NewAccountValidator(), cfg.BcryptCost)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("ошибка загрузки учетных записей: %w", err)
	}
	users := user.NewService(accounts, user.NewAccountValidator(), log)

	sessions := session.NewService(session.NewRepo(kv, log), users, log)
	if err := sessions.Restore(ctx); err != nil {
		kv.Close()
		return nil, fmt.Errorf("ошибка восстановления сессии: %w", err)
	}

	capability := deps.Camera
	if capability == nil {
		capability = newCapability(cfg)
	}
	class := camera.DetectDeviceClass(camera.CurrentSignals(cfg.UserAgent))

	decoder := deps.Decoder
	if decoder == nil {
		decoder = newDecoder(cfg, httpCl)
	}

	app := &App{
		config:     cfg,
		log:        log,
		kv:         kv,
		users:      users,
		session:    sessions,
		history:    history.NewService(history.NewRepo(kv, log), log),
		camera:     camera.NewSession(capability, class, log),
		decoder:    decoder,
		httpClient: httpCl,
	}

	log.Debug("client initialized",
		"storage", cfg.StorageDriver,
		"camera", cfg.CameraDriver,
		"decoder", cfg.Decoder,
		"device_class", class,
	)
	return app, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.KV, error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		rc, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
		}
		return redis.New(rc, redis.DefaultPrefix, log), nil
	case config.StorageMemory:
		// ничего не сохраняется между запусками
		return memory.New(), nil
	default:
		kv, err := sqlite.New(cfg.DataPath, log)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
		}
		return kv, nil
	}
}

func newCapability(cfg *config.Config) camera.Capability {
	if cfg.CameraDriver == config.CameraDevice {
		return camera.NewDeviceCapability(cfg.CameraDeviceGlob)
	}
	return camera.NewSynthetic()
}

func newDecoder(cfg *config.Config, httpCl *httpClient) scan.Decoder {
	if cfg.Decoder == config.DecoderHTTP {
		return httpCl
	}
	return scan.NewSimulatedDecoder(cfg.ScanLatency, cfg.ScanFailureRate)
}

func (a *App) Config() *config.Config {
	return a.config
}

// Login выполняет вход пользователя
func (a *App) Login(ctx context.Context, username, password string) (user.Identity, error) {
	id, err := a.session.Login(ctx, username, password)
	if err != nil {
		return user.Identity{}, err
	}
	a.log.Info("Вход выполнен успешно", "user_id", id.ID)
	return id, nil
}

// Logout завершает сессию
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// CurrentUser возвращает пользователя текущей сессии
func (a *App) CurrentUser() (user.Identity, bool) {
	return a.session.Current()
}

// IsAuthenticated проверяет, есть ли активная сессия
func (a *App) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}

// History возвращает журнал текущего пользователя
func (a *App) History(ctx context.Context) ([]history.Entry, error) {
	id, ok := a.session.Current()
	if !ok {
		return nil, scan.ErrNotAuthenticated
	}
	return a.history.ListFor(ctx, id.ID)
}

// ClearHistory удаляет записи текущего пользователя
func (a *App) ClearHistory(ctx context.Context) (int, error) {
	id, ok := a.session.Current()
	if !ok {
		return 0, scan.ErrNotAuthenticated
	}
	return a.history.ClearFor(ctx, id.ID)
}

// NewScanner создает сканер, который владеет камерой приложения.
// Вызывающий обязан закрыть сканер.
func (a *App) NewScanner() *scan.Scanner {
	return scan.NewScanner(a.session, a.camera, a.decoder, a.history, a.log,
		scan.WithLowBalanceThreshold(a.config.LowBalanceThreshold))
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// Close освобождает камеру и хранилище
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	return errors.Join(a.camera.Close(), a.kv.Close())
}
