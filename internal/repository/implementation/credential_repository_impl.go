package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"chatshot-be/internal/entity"
	"chatshot-be/internal/repository/contract"
)

const credentialFileName = "accounts.json"

// CredentialRepositoryImpl keeps the id -> bcrypt hash map in a single JSON
// file under the data dir. The whole file is rewritten on every create, same
// as the account stores.
type CredentialRepositoryImpl struct {
	path string
	mu   sync.Mutex
}

func NewCredentialRepository(dataDir string) contract.CredentialRepository {
	return &CredentialRepositoryImpl{
		path: filepath.Join(dataDir, credentialFileName),
	}
}

func (r *CredentialRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.readAll()
	if err != nil {
		return err
	}
	creds[account.Id] = account.PasswordHash
	return r.writeAll(creds)
}

func (r *CredentialRepositoryImpl) FindOne(ctx context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.readAll()
	if err != nil {
		return nil, err
	}
	hash, ok := creds[id]
	if !ok {
		return nil, nil
	}
	return &entity.Account{Id: id, PasswordHash: hash}, nil
}

func (r *CredentialRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	account, err := r.FindOne(ctx, id)
	if err != nil {
		return false, err
	}
	return account != nil, nil
}

func (r *CredentialRepositoryImpl) readAll() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	creds := map[string]string{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	return creds, nil
}

func (r *CredentialRepositoryImpl) writeAll(creds map[string]string) error {
	data, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, data)
}
