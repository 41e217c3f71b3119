package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/hubex/account-service/internal/config"
	"github.com/hubex/account-service/internal/domain"
	"github.com/hubex/account-service/internal/events"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:                 "test-secret",
			SessionTokenTTLHours:      168,
			VerificationTokenTTLHours: 168,
			PasswordResetTTLMinutes:   60,
			BcryptCost:                4,
		},
	}
}

func cloneAccount(account *domain.Account) *domain.Account {
	cp := *account
	if account.VerificationToken != nil {
		token := *account.VerificationToken
		cp.VerificationToken = &token
	}
	cp.Roles = append([]domain.Role(nil), account.Roles...)
	return &cp
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return errors.New("unique violation on accounts.email")
		}
	}
	r.nextID++
	account.ID = r.nextID
	r.accounts[account.PublicID] = cloneAccount(account)
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.PublicID]; !ok {
		return pgx.ErrNoRows
	}
	r.accounts[account.PublicID] = cloneAccount(account)
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[publicID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.accounts, publicID)
	return nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			return cloneAccount(account), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByPublicID(_ context.Context, publicID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[publicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneAccount(account), nil
}

func (r *fakeAccountRepo) GetByVerificationToken(_ context.Context, token string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.VerificationToken != nil && *account.VerificationToken == token {
			return cloneAccount(account), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) List(_ context.Context, page, size int) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		all = append(all, account)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := page * size
	if start >= len(all) {
		return []domain.Account{}, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}

	out := make([]domain.Account, 0, end-start)
	for _, account := range all[start:end] {
		out = append(out, *cloneAccount(account))
	}
	return out, nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string]*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]*domain.Role{
		domain.RoleUser: {ID: 1, Name: domain.RoleUser, Authorities: []domain.Authority{
			{ID: 1, Name: domain.AuthorityRead},
			{ID: 2, Name: domain.AuthorityWrite},
		}},
		domain.RoleAdmin: {ID: 2, Name: domain.RoleAdmin, Authorities: []domain.Authority{
			{ID: 1, Name: domain.AuthorityRead},
			{ID: 2, Name: domain.AuthorityWrite},
			{ID: 3, Name: domain.AuthorityDelete},
		}},
	}}
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) EnsureAuthority(_ context.Context, name string) (*domain.Authority, error) {
	return &domain.Authority{Name: name}, nil
}

func (r *fakeRoleRepo) Ensure(_ context.Context, name string, authorities []domain.Authority) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[name]; ok {
		cp := *role
		return &cp, nil
	}
	role := &domain.Role{ID: int64(len(r.roles) + 1), Name: name, Authorities: authorities}
	r.roles[name] = role
	cp := *role
	return &cp, nil
}

type fakeResetRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts *fakeAccountRepo
	records  map[int64]*domain.PasswordReset
}

func newFakeResetRepo(accounts *fakeAccountRepo) *fakeResetRepo {
	return &fakeResetRepo{accounts: accounts, records: map[int64]*domain.PasswordReset{}}
}

func (r *fakeResetRepo) GetByToken(_ context.Context, token string) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.Token == token {
			cp := *record
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) GetByAccountEmail(ctx context.Context, email string) (*domain.PasswordReset, error) {
	account, err := r.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[account.ID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *record
	return &cp, nil
}

func (r *fakeResetRepo) Upsert(_ context.Context, reset *domain.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.records[reset.AccountID]; ok {
		existing.Token = reset.Token
		reset.ID = existing.ID
		return nil
	}
	r.nextID++
	reset.ID = r.nextID
	cp := *reset
	r.records[reset.AccountID] = &cp
	return nil
}

func (r *fakeResetRepo) Consume(_ context.Context, token string) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for accountID, record := range r.records {
		if record.Token == token {
			delete(r.records, accountID)
			cp := *record
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func resetRecordFor(accountID int64, publicID, token string) *domain.PasswordReset {
	return &domain.PasswordReset{AccountID: accountID, AccountPublicID: publicID, Token: token}
}

// recordingDispatcher captures published events synchronously so tests can
// assert on them without racing the real dispatcher's goroutines.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) ofType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
