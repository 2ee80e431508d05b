package file

import (
	"fmt"
	"os"
	"strings"

	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
)

// TxLog appends formatted entry lines to <dir>/<username>_transactions.txt.
// The file is opened per call; nothing stays open across user prompts.
type TxLog struct {
	dir string
}

func NewTxLog(dir string) *TxLog {
	return &TxLog{dir: dir}
}

func (l *TxLog) Append(entry models.TransactionEntry) error {
	path, err := userPath(l.dir, entry.Username, "_transactions.txt")
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, entry.Line())
	return err
}

func (l *TxLog) Read(username string) ([]string, error) {
	path, err := userPath(l.dir, username, "_transactions.txt")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

var _ interfaces.TransactionLog = (*TxLog)(nil)
