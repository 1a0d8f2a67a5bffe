package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/provcred/credportal/internal/common"
	"github.com/provcred/credportal/internal/dbx"
	"github.com/provcred/credportal/internal/server/models"
	documentsrepo "github.com/provcred/credportal/internal/server/repositories/documents"
	draftsrepo "github.com/provcred/credportal/internal/server/repositories/drafts"
	usersrepo "github.com/provcred/credportal/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	getOut *models.User
	getErr error

	getActiveOut *models.User
	getActiveErr error

	createOut  *models.User
	createErr  error
	createArgs *models.User

	updateOut  *models.User
	updateErr  error
	updateArgs []string

	listOut []*models.User
	listErr error

	countOut int64
	countErr error
}

func (f *fakeUsersRepo) GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetActiveBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	if f.getActiveErr != nil {
		return nil, f.getActiveErr
	}
	return f.getActiveOut, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.createArgs = user
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, subjectID, email, firstName, lastName string) (*models.User, error) {
	f.updateArgs = []string{subjectID, email, firstName, lastName}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	d *fakeDraftsRepo
	f *fakeDocumentsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Drafts(db dbx.DBTX) draftsrepo.Repository       { return m.d }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documentsrepo.Repository { return m.f }

// --- tests ---

func TestUserService_Sync_CreatesWhenMissing(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeUsersRepo{
		getErr:    common.ErrorNotFound,
		createOut: &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleClient},
	}
	svc := NewUserService(db, &fakeRepoManager{u: repo})

	got, err := svc.Sync(context.Background(), SyncParams{
		SubjectID: "subj-1",
		Email:     "Alice@Example.COM",
		FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if repo.createArgs.Email != "alice@example.com" {
		t.Fatalf("email must be lower-cased, got %q", repo.createArgs.Email)
	}
	if repo.createArgs.Role != models.RoleClient {
		t.Fatalf("role must default to client, got %q", repo.createArgs.Role)
	}
}

func TestUserService_Sync_UpdateKeepsStoredNamesWhenOmitted(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeUsersRepo{
		getOut:    &models.User{ID: 1, SubjectID: "subj-1", FirstName: "Alice", LastName: "Smith"},
		updateOut: &models.User{ID: 1, SubjectID: "subj-1", FirstName: "Alice", LastName: "Smith"},
	}
	svc := NewUserService(db, &fakeRepoManager{u: repo})

	_, err := svc.Sync(context.Background(), SyncParams{
		SubjectID: "subj-1",
		Email:     "alice@example.com",
		// FirstName/LastName omitted
	})
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}

	want := []string{"subj-1", "alice@example.com", "Alice", "Smith"}
	for i, arg := range repo.updateArgs {
		if arg != want[i] {
			t.Fatalf("UpdateProfile args = %v, want %v", repo.updateArgs, want)
		}
	}
}

func TestUserService_Sync_InvalidRole(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	svc := NewUserService(db, &fakeRepoManager{u: repo})

	_, err := svc.Sync(context.Background(), SyncParams{
		SubjectID: "subj-1",
		Email:     "a@b.c",
		Role:      models.UserRole("superuser"),
	})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestUserService_Me_MissingRowIsOpaque(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	svc := NewUserService(db, &fakeRepoManager{u: repo})

	_, err := svc.Me(context.Background(), "ghost")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("self-lookup failure must not carry a structured kind, got %v", err)
	}
}

func TestUserService_List_RequiresAdmin(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeUsersRepo{listOut: []*models.User{{ID: 2}, {ID: 1}}}
	svc := NewUserService(db, &fakeRepoManager{u: repo})

	_, err := svc.List(context.Background(), models.RoleStaff)
	if !errors.Is(err, common.ErrorPermissionDenied) {
		t.Fatalf("want common.ErrorPermissionDenied, got %v", err)
	}

	_, err = svc.List(context.Background(), models.RoleClient)
	if !errors.Is(err, common.ErrorPermissionDenied) {
		t.Fatalf("want common.ErrorPermissionDenied, got %v", err)
	}

	got, err := svc.List(context.Background(), models.RoleAdmin)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUserService_DBCheck(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := &fakeUsersRepo{countOut: 5}
	svc := NewUserService(db, &fakeRepoManager{u: repo})

	rows := sqlmock.NewRows([]string{"table_name"}).
		AddRow("onboarding_drafts").
		AddRow("uploaded_documents").
		AddRow("users")
	mock.ExpectQuery(`SELECT\s+table_name\s+FROM\s+information_schema\.tables`).WillReturnRows(rows)

	got, err := svc.DBCheck(context.Background())
	if err != nil {
		t.Fatalf("DBCheck error: %v", err)
	}
	if len(got.Tables) != 3 {
		t.Fatalf("unexpected tables: %v", got.Tables)
	}
	if got.UsersCount == nil || *got.UsersCount != 5 {
		t.Fatalf("unexpected users count: %v", got.UsersCount)
	}
}

func TestUserService_DBCheck_NoUsersTable(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{}})

	rows := sqlmock.NewRows([]string{"table_name"}).AddRow("goose_db_version")
	mock.ExpectQuery(`SELECT\s+table_name\s+FROM\s+information_schema\.tables`).WillReturnRows(rows)

	got, err := svc.DBCheck(context.Background())
	if err != nil {
		t.Fatalf("DBCheck error: %v", err)
	}
	if got.UsersCount != nil {
		t.Fatalf("users count must be absent, got %v", *got.UsersCount)
	}
}

func TestUserService_DBCheck_QueryError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{}})

	mock.ExpectQuery(`SELECT\s+table_name\s+FROM\s+information_schema\.tables`).
		WillReturnError(errors.New("db down"))

	_, err := svc.DBCheck(context.Background())
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}
