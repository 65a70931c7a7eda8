// Package seed загружает начальный набор сотрудников из файла или по HTTP.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"employeedir/internal/directory/domain/entities"
	"employeedir/internal/directory/snapshot"
	"employeedir/pkg/logger"
)

const (
	LogSeedLoading = "loading seed data"
	LogSeedLoaded  = "seed data loaded"

	errReadSeed    = "failed to read seed data"
	errFetchSeed   = "failed to fetch seed data"
	errDecodeSeed  = "failed to decode seed data"
	maxSeedBytes   = 16 << 20
	defaultTimeout = 10 * time.Second
)

// ErrUnexpectedStatus возвращается при ответе сервера не 2xx.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Loader читает JSON-массив сотрудников из source: путь к файлу или http(s) URL.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader создает загрузчик. timeout <= 0 заменяется значением по умолчанию.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Loader{
		source: source,
		client: &http.Client{Timeout: timeout},
	}
}

// Load возвращает сотрудников из источника.
func (l *Loader) Load(ctx context.Context) ([]entities.Employee, error) {
	log := logger.Log(ctx).With(zap.String("seed_source", l.source))
	log.Info(ctx, LogSeedLoading)

	var (
		raw []byte
		err error
	)
	if isURL(l.source) {
		raw, err = l.fetch(ctx)
	} else {
		raw, err = os.ReadFile(l.source)
		if err != nil {
			err = fmt.Errorf("%s: %w", errReadSeed, err)
		}
	}
	if err != nil {
		return nil, err
	}

	employees, err := snapshot.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errDecodeSeed, err)
	}

	log.Info(ctx, LogSeedLoaded, zap.Int("employees", len(employees)))
	return employees, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errFetchSeed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errFetchSeed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: %d", errFetchSeed, ErrUnexpectedStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSeedBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errFetchSeed, err)
	}
	return raw, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
