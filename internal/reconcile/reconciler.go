package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/store"
)

// Mode selects what a reconciliation run is allowed to do.
type Mode string

const (
	// ModeCopy inserts new codes and refreshes existing ones; it never
	// deletes anything.
	ModeCopy Mode = "copy"
	// ModeFullSync additionally deletes catalog codes absent from the
	// batch, subject to the stock protection rule.
	ModeFullSync Mode = "full-sync"
)

// ParseMode validates a mode string from a CLI flag or form field.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCopy, ModeFullSync:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown reconcile mode %q (want %q or %q)", s, ModeCopy, ModeFullSync)
}

// Status is the outcome of one processed code.
type Status string

const (
	StatusInserted Status = "inserted"
	StatusUpdated  Status = "updated"
	StatusDeleted  Status = "deleted"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
)

// Outcome records what happened to one code. Index is the 1-based batch row
// number, or 0 for deletion-phase entries which have no batch row.
type Outcome struct {
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// IndexLabel renders the batch row number, "N/A" for deletion-phase entries.
func (o Outcome) IndexLabel() string {
	if o.Index == 0 {
		return "N/A"
	}
	return strconv.Itoa(o.Index)
}

// Report is the result of one reconciliation run. It is transient: callers
// show it to the user and discard it.
type Report struct {
	RunID    uuid.UUID `json:"run_id"`
	Mode     Mode      `json:"mode"`
	Inserted int       `json:"inserted"`
	Updated  int       `json:"updated"`
	Deleted  int       `json:"deleted"`
	Skipped  int       `json:"skipped"`
	Errors   int       `json:"errors"`
	Outcomes []Outcome `json:"outcomes"`
}

// Summary is the one-line form used by the CLI and logs.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d inserted | %d updated | %d deleted | %d skipped | %d errors",
		r.Inserted, r.Updated, r.Deleted, r.Skipped, r.Errors)
}

func (r *Report) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusInserted:
		r.Inserted++
	case StatusUpdated:
		r.Updated++
	case StatusDeleted:
		r.Deleted++
	case StatusSkipped:
		r.Skipped++
	case StatusError:
		r.Errors++
	}
}

// Reconciler merges external batches into the catalog. It is not reentrant:
// only one run is ever in flight.
type Reconciler struct {
	store store.ProductStore
	mu    sync.Mutex
}

func New(s store.ProductStore) *Reconciler {
	return &Reconciler{store: s}
}

// Sync reads a CSV batch from r and applies it in the given mode. A read
// failure aborts before any mutation.
func (rc *Reconciler) Sync(ctx context.Context, r io.Reader, mode Mode) (*Report, error) {
	records, err := ReadBatch(r)
	if err != nil {
		return nil, err
	}
	return rc.SyncRecords(ctx, records, mode)
}

// SyncFile reads a CSV batch from a file and applies it in the given mode.
func (rc *Reconciler) SyncFile(ctx context.Context, path string, mode Mode) (*Report, error) {
	records, err := ReadBatchFile(path)
	if err != nil {
		return nil, err
	}
	return rc.SyncRecords(ctx, records, mode)
}

// SyncRecords applies an already-parsed batch. Row-level failures are
// recorded and processing continues; only store-level failures while
// loading the current catalog abort the run.
func (rc *Reconciler) SyncRecords(ctx context.Context, records []Record, mode Mode) (*Report, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	report := &Report{RunID: uuid.New(), Mode: mode}

	// Codes present in the batch. Blank codes are not part of the batch
	// for deletion purposes either.
	newCodes := make(map[string]bool)
	for _, rec := range records {
		if rec.Code != "" {
			newCodes[rec.Code] = true
		}
	}

	log.Printf("🔄 Reconcile: starting %s run (%d rows)", mode, len(records))

	if mode == ModeFullSync {
		if err := rc.deleteAbsent(ctx, newCodes, report); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		index := i + 1
		if rec.Code == "" {
			// Deliberately silent: blank codes are excluded from counts
			// and from the outcome list.
			continue
		}
		rc.applyRecord(ctx, index, rec, report)
	}

	log.Printf("✅ Reconcile: %s", report.Summary())
	return report, nil
}

// deleteAbsent removes catalog codes missing from the batch. A product with
// stock on hand is never deleted: a code vanishing from an external list
// does not mean the physical stock vanished.
func (rc *Reconciler) deleteAbsent(ctx context.Context, newCodes map[string]bool, report *Report) error {
	dbCodes, err := rc.store.Codes(ctx)
	if err != nil {
		return fmt.Errorf("load catalog codes: %w", err)
	}

	var absent []string
	for _, code := range dbCodes {
		if !newCodes[code] {
			absent = append(absent, code)
		}
	}
	// Stable outcome ordering regardless of how the store returns codes.
	sort.Strings(absent)

	for _, code := range absent {
		p, err := rc.store.GetByCode(ctx, code)
		if err != nil {
			report.record(Outcome{Code: code, Status: StatusError, Detail: err.Error()})
			continue
		}
		if p.TotalQty > 0 {
			report.record(Outcome{Code: code, Status: StatusSkipped, Detail: fmt.Sprintf("qty=%d", p.TotalQty)})
			continue
		}
		if err := rc.store.DeleteByCode(ctx, code); err != nil {
			report.record(Outcome{Code: code, Status: StatusError, Detail: err.Error()})
			continue
		}
		report.record(Outcome{Code: code, Status: StatusDeleted})
	}
	return nil
}

// applyRecord inserts or refreshes one batch row. Updates touch only the
// sync-managed fields; the stock buckets and note are locally owned and
// never written here.
func (rc *Reconciler) applyRecord(ctx context.Context, index int, rec Record, report *Report) {
	existing, err := rc.store.GetByCode(ctx, rec.Code)
	switch {
	case err == nil:
		existing.Name = rec.Name
		existing.Description = rec.Description
		existing.Cost = rec.Cost
		existing.Retail = rec.Retail
		existing.RequiredQty = rec.RequiredQty
		if err := rc.store.Update(ctx, existing); err != nil {
			report.record(Outcome{Index: index, Code: rec.Code, Status: StatusError, Detail: err.Error()})
			return
		}
		report.record(Outcome{Index: index, Code: rec.Code, Status: StatusUpdated})

	case errors.Is(err, store.ErrNotFound):
		p := &models.Product{
			Code:        rec.Code,
			Name:        rec.Name,
			Description: rec.Description,
			Cost:        rec.Cost,
			Retail:      rec.Retail,
			RequiredQty: rec.RequiredQty,
			// Stock buckets always start at zero; counts are entered
			// locally, never imported.
		}
		if err := rc.store.Create(ctx, p); err != nil {
			report.record(Outcome{Index: index, Code: rec.Code, Status: StatusError, Detail: err.Error()})
			return
		}
		report.record(Outcome{Index: index, Code: rec.Code, Status: StatusInserted})

	default:
		report.record(Outcome{Index: index, Code: rec.Code, Status: StatusError, Detail: err.Error()})
	}
}
