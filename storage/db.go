package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"backend/models"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	if err := ensureCoreTables(db); err != nil {
		log.Fatal("Failed to ensure core tables:", err)
	}

	return db
}

const createCoreTablesSQL = `
CREATE TABLE IF NOT EXISTS users (
	id          SERIAL PRIMARY KEY,
	email       TEXT NOT NULL UNIQUE,
	password    TEXT NOT NULL,
	first_name  TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	role_name   TEXT NOT NULL,
	agent_id    INT,
	suspended   BOOLEAN NOT NULL DEFAULT FALSE,
	reset_token TEXT,
	reset_token_expiry TIMESTAMPTZ,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS session (
	user_id    INT NOT NULL REFERENCES users(id),
	session_id TEXT NOT NULL UNIQUE,
	host_name  TEXT NOT NULL DEFAULT '',
	ip_address TEXT NOT NULL DEFAULT '',
	timestp    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL,
	refresh_token TEXT,
	refresh_token_expires_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS agents (
	id             SERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	contact_person TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL UNIQUE,
	phone_no       VARCHAR(20) NOT NULL DEFAULT '',
	service_scope  TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

func ensureCoreTables(db *sql.DB) error {
	_, err := db.Exec(createCoreTablesSQL)
	return err
}

// SaveSession saves a new session for a user. If allowMultipleSessions is
// false, all existing sessions for the user are dropped first.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		if _, err := db.Exec(`DELETE FROM session WHERE user_id = $1`, session.UserID); err != nil {
			return fmt.Errorf("failed to delete existing user sessions: %v", err)
		}
	}

	insertQuery := `INSERT INTO session (user_id, session_id, host_name, ip_address, timestp, expires_at, refresh_token, refresh_token_expires_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.Exec(insertQuery, session.UserID, session.SessionID, session.HostName, session.IPAddress,
		session.Timestamp, session.ExpiresAt, session.RefreshToken, session.RefreshTokenExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %v", err)
	}
	return nil
}

// DeleteSessionByToken removes one device's session (logout).
func DeleteSessionByToken(db *sql.DB, sessionID string) error {
	result, err := db.Exec(`DELETE FROM session WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return errors.New("session not found or already deleted")
	}
	return nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	var agentID sql.NullInt64
	query := `SELECT id, email, password, first_name, last_name, role_name, agent_id, suspended
	          FROM users WHERE LOWER(email) = LOWER($1)`

	err := db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.RoleName, &agentID, &user.Suspended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to query user: %v", err)
	}
	if agentID.Valid {
		user.AgentID = int(agentID.Int64)
	}

	return &user, nil
}

// GetUserBySessionToken resolves the session token to its user, rejecting
// suspended accounts. This is the server-side authority the advisory JWT
// claims are checked against.
func GetUserBySessionToken(db *sql.DB, sessionID string) (*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role_name, u.agent_id, u.suspended
		FROM session s
		JOIN users u ON s.user_id = u.id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`

	var user models.User
	var agentID sql.NullInt64
	err := db.QueryRow(query, sessionID).Scan(&user.ID, &user.Email, &user.FirstName,
		&user.LastName, &user.RoleName, &agentID, &user.Suspended)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("no active session for token")
		}
		return nil, err
	}
	if user.Suspended {
		return nil, errors.New("account suspended")
	}
	if agentID.Valid {
		user.AgentID = int(agentID.Int64)
	}

	return &user, nil
}

// CleanupExpiredSessions drops sessions a day past expiry. Run by the daily
// maintenance cron.
func CleanupExpiredSessions(db *sql.DB) error {
	threshold := time.Now().Add(-24 * time.Hour)
	_, err := db.Exec(`DELETE FROM session WHERE expires_at < $1`, threshold)
	return err
}

// ExpireStaleQuotes flags quotes whose validity date has passed. Flagged
// quotes drop out of the default comparison view but stay queryable with
// includeExpired=true.
func ExpireStaleQuotes(db *sql.DB) (int64, error) {
	result, err := db.Exec(`
		UPDATE freight_quotes SET expired = TRUE
		WHERE expired = FALSE
		  AND validity_date <> ''
		  AND validity_date::date < CURRENT_DATE`)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale quotes: %v", err)
	}
	return result.RowsAffected()
}
