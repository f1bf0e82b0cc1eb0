package media

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Workdir — приватная рабочая директория одного запуска конвейера.
// Имя уникально (uuid), поэтому параллельные запуски не пересекаются.
// Close удаляет директорию со всем содержимым на любом пути выхода.
type Workdir struct {
	root   string
	logger *zap.SugaredLogger
}

func New(logger *zap.SugaredLogger) (*Workdir, error) {
	root := filepath.Join(os.TempDir(), "podcast-"+uuid.NewString())
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, err
	}
	return &Workdir{root: root, logger: logger}, nil
}

// Path возвращает путь к файлу name внутри рабочей директории.
func (w *Workdir) Path(name string) string {
	return filepath.Join(w.root, name)
}

// Root возвращает путь к самой директории.
func (w *Workdir) Root() string { return w.root }

// Close рекурсивно удаляет рабочую директорию. Ошибка удаления логируется,
// но не возвращается: вызывающему коду уже нечего с ней делать.
func (w *Workdir) Close() {
	if err := os.RemoveAll(w.root); err != nil && w.logger != nil {
		w.logger.Warnw("не удалось удалить рабочую директорию", "path", w.root, "error", err)
	}
}
