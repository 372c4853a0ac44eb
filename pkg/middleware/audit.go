// Package middleware holds the gin middleware shared by the activities
// API: request logging and the asynchronous enrollment audit trail.
package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mergington-high/activities-api/pkg/telemetry"
)

// AuditAction represents the type of roster action being audited
type AuditAction string

const (
	AuditActionSignup     AuditAction = "signup"
	AuditActionUnregister AuditAction = "unregister"
	AuditActionView       AuditAction = "view"
	AuditActionOther      AuditAction = "other"
)

// AuditEntry represents a single audit log entry
type AuditEntry struct {
	ID           string      `json:"id"`
	Action       AuditAction `json:"action"`
	ActivityName string      `json:"activity_name,omitempty"`
	StudentEmail string      `json:"student_email,omitempty"`
	StatusCode   int         `json:"status_code"`
	IPAddress    string      `json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	RequestID    string      `json:"request_id,omitempty"`
	TraceID      string      `json:"trace_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditConfig holds configuration for the audit middleware
type AuditConfig struct {
	// DB is the PostgreSQL connection pool for storing audit entries.
	// When nil, entries are dropped after test-mode collection.
	DB *pgxpool.Pool
	// BufferSize is the size of the async audit buffer (default: 1000)
	BufferSize int
	// FlushInterval is how often to flush the buffer (default: 5 seconds)
	FlushInterval time.Duration
	// BatchSize is the maximum number of entries per insert batch (default: 100)
	BatchSize int
	// SkipPaths is a list of path prefixes to skip auditing
	SkipPaths []string
	// SkipMethods is a list of HTTP methods to skip
	SkipMethods []string
}

// DefaultAuditConfig returns default configuration
func DefaultAuditConfig(db *pgxpool.Pool) *AuditConfig {
	return &AuditConfig{
		DB:            db,
		BufferSize:    1000,
		FlushInterval: 5 * time.Second,
		BatchSize:     100,
		SkipPaths:     []string{"/health", "/static"},
		SkipMethods:   []string{"HEAD", "OPTIONS"},
	}
}

// AuditLogger handles async audit logging
type AuditLogger struct {
	config    *AuditConfig
	buffer    chan *AuditEntry
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// For testing: collect entries instead of writing to the database
	testMode    bool
	testEntries []*AuditEntry
	testMu      sync.Mutex
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(config *AuditConfig) *AuditLogger {
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	al := &AuditLogger{
		config: config,
		buffer: make(chan *AuditEntry, config.BufferSize),
		ctx:    ctx,
		cancel: cancel,
	}

	al.wg.Add(1)
	go al.worker()

	return al
}

// Log adds an audit entry to the buffer. Never blocks: when the buffer is
// full the entry is dropped rather than stalling a request.
func (al *AuditLogger) Log(entry *AuditEntry) {
	select {
	case al.buffer <- entry:
	default:
	}
}

// Close gracefully shuts down the audit logger
func (al *AuditLogger) Close() error {
	al.closeOnce.Do(func() {
		al.cancel()
		close(al.buffer)
		al.wg.Wait()
	})
	return nil
}

// SetTestMode enables test mode which collects entries instead of writing
// them to the database
func (al *AuditLogger) SetTestMode(enabled bool) {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	al.testMode = enabled
	if enabled {
		al.testEntries = make([]*AuditEntry, 0)
	}
}

// TestEntries returns collected entries (only in test mode)
func (al *AuditLogger) TestEntries() []*AuditEntry {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	result := make([]*AuditEntry, len(al.testEntries))
	copy(result, al.testEntries)
	return result
}

// worker batches audit entries in the background
func (al *AuditLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]*AuditEntry, 0, al.config.BatchSize)

	for {
		select {
		case entry, ok := <-al.buffer:
			if !ok {
				if len(batch) > 0 {
					al.flush(batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.config.BatchSize {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-al.ctx.Done():
			if len(batch) > 0 {
				al.flush(batch)
			}
			return
		}
	}
}

// flush writes a batch of entries to the database
func (al *AuditLogger) flush(entries []*AuditEntry) {
	if len(entries) == 0 {
		return
	}

	al.testMu.Lock()
	if al.testMode {
		al.testEntries = append(al.testEntries, entries...)
		al.testMu.Unlock()
		return
	}
	al.testMu.Unlock()

	if al.config.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	query := `
		INSERT INTO enrollment_audit (
			id, action, activity_name, student_email, status_code,
			ip_address, user_agent, request_id, trace_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(query,
			entry.ID, string(entry.Action), entry.ActivityName, entry.StudentEmail,
			entry.StatusCode, entry.IPAddress, entry.UserAgent,
			entry.RequestID, entry.TraceID, entry.CreatedAt,
		)
	}

	// Audit failures never block the application.
	br := al.config.DB.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return
		}
	}
}

// Audit creates the audit logging middleware. Signup and unregister
// requests are recorded with the activity and student they targeted.
func Audit(logger *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		config := logger.config

		for _, path := range config.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}
		for _, method := range config.SkipMethods {
			if c.Request.Method == method {
				c.Next()
				return
			}
		}

		startTime := time.Now()

		c.Next()

		entry := &AuditEntry{
			ID:           uuid.New().String(),
			Action:       actionFor(c.Request.Method, c.Request.URL.Path),
			ActivityName: c.Param("name"),
			StudentEmail: c.Query("email"),
			StatusCode:   c.Writer.Status(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.GetHeader("User-Agent"),
			RequestID:    RequestIDFromContext(c),
			TraceID:      telemetry.GetTraceID(c.Request.Context()),
			CreatedAt:    startTime,
		}

		logger.Log(entry)
	}
}

// actionFor maps an HTTP request to a roster audit action
func actionFor(method, path string) AuditAction {
	switch {
	case method == "POST" && strings.HasSuffix(path, "/signup"):
		return AuditActionSignup
	case method == "DELETE" && strings.HasSuffix(path, "/unregister"):
		return AuditActionUnregister
	case method == "GET":
		return AuditActionView
	default:
		return AuditActionOther
	}
}
