package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"vrisa/internal/domain"
)

// sessionRow is the persisted shape; token columns hold ciphertext only.
type sessionRow struct {
	ID            string     `gorm:"column:id;primaryKey"`
	TokenHash     string     `gorm:"column:token_hash;uniqueIndex"`
	UserID        int64      `gorm:"column:user_id"`
	Email         string     `gorm:"column:email"`
	FirstName     string     `gorm:"column:first_name"`
	InstitutionID *int64     `gorm:"column:institution_id"`
	Role          string     `gorm:"column:role"`
	RoleStatus    string     `gorm:"column:role_status"`
	AccessToken   string     `gorm:"column:access_token"`
	RefreshToken  string     `gorm:"column:refresh_token"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	ExpiresAt     time.Time  `gorm:"column:expires_at"`
	RevokedAt     *time.Time `gorm:"column:revoked_at"`
}

func (sessionRow) TableName() string { return "sessions" }

// GormStore keeps sessions in whatever database.Connect resolved to (sqlite
// locally, postgres in deploys).
type GormStore struct {
	db     *gorm.DB
	cipher *Cipher
}

var ErrDuplicateSession = errors.New("session token already exists")

func NewGormStore(db *gorm.DB, cipher *Cipher) *GormStore {
	return &GormStore{db: db, cipher: cipher}
}

// Migrate creates the sessions table. Called once from main.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&sessionRow{})
}

func (s *GormStore) Save(ctx context.Context, tokenHash string, sess *Session, ttl time.Duration) error {
	access, err := s.cipher.Seal(sess.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := s.cipher.Seal(sess.RefreshToken)
	if err != nil {
		return err
	}

	now := time.Now()
	row := sessionRow{
		ID:            sess.ID,
		TokenHash:     tokenHash,
		UserID:        sess.UserID,
		Email:         sess.Email,
		FirstName:     sess.FirstName,
		InstitutionID: sess.InstitutionID,
		Role:          string(sess.Role),
		RoleStatus:    string(sess.RoleStatus),
		AccessToken:   access,
		RefreshToken:  refresh,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}

	// Login overwrites any previous state for the same token hash.
	if err := s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&sessionRow{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSession
		}
		return err
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, tokenHash string) (*Session, error) {
	var row sessionRow
	err := s.db.WithContext(ctx).Where("token_hash = ? AND revoked_at IS NULL", tokenHash).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !row.ExpiresAt.After(time.Now()) {
		_ = s.Delete(ctx, tokenHash)
		return nil, ErrNotFound
	}

	access, err := s.cipher.Open(row.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.cipher.Open(row.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:            row.ID,
		UserID:        row.UserID,
		Email:         row.Email,
		FirstName:     row.FirstName,
		InstitutionID: row.InstitutionID,
		Role:          domain.NormalizeRole(row.Role),
		RoleStatus:    domain.RoleStatus(row.RoleStatus),
		AccessToken:   access,
		RefreshToken:  refresh,
		CreatedAt:     row.CreatedAt,
		ExpiresAt:     row.ExpiresAt,
	}, nil
}

func (s *GormStore) Delete(ctx context.Context, tokenHash string) error {
	return s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&sessionRow{}).Error
}

// PurgeExpired removes expired and revoked rows; used by cmd/session_cleanup.
func (s *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).Delete(&sessionRow{})
	return res.RowsAffected, res.Error
}
