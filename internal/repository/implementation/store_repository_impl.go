package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chatshot-be/internal/entity"
	"chatshot-be/internal/repository/contract"
)

// StoreRepositoryImpl maps each account key to one portable JSON file,
// chat_data_<key>.json, fully rewritten on every persist. Concurrent sessions
// for the same account are last-writer-wins; there is no file locking.
type StoreRepositoryImpl struct {
	dataDir string
}

func NewStoreRepository(dataDir string) contract.StoreRepository {
	return &StoreRepositoryImpl{dataDir: dataDir}
}

func (r *StoreRepositoryImpl) Path(accountKey string) string {
	return filepath.Join(r.dataDir, fmt.Sprintf("chat_data_%s.json", accountKey))
}

func (r *StoreRepositoryImpl) Load(ctx context.Context, accountKey string) (*entity.AccountStore, bool, error) {
	path := r.Path(accountKey)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read account store: %w", err)
	}

	var store entity.AccountStore
	if err := json.Unmarshal(data, &store); err != nil {
		// A corrupt store must not block entry. Keep the bytes around so the
		// next persist does not destroy the only copy.
		sidecar := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
		_ = os.WriteFile(sidecar, data, 0o644)
		return nil, true, nil
	}
	if store.SavedChats == nil {
		store.SavedChats = []entity.SavedChat{}
	}
	return &store, false, nil
}

func (r *StoreRepositoryImpl) Persist(ctx context.Context, accountKey string, store *entity.AccountStore) error {
	data, err := json.MarshalIndent(store, "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.Path(accountKey), data)
}

// writeFileAtomic replaces path in one step: the new content lands in a temp
// file in the same dir and is renamed over the target, so readers never see a
// half-written store.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
