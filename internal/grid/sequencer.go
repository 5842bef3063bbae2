package grid

import (
	"context"

	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/store"
)

// Sequencer drives cell-by-cell editing over the catalog grid. It owns the
// row projection and at most one active edit session; opening a new editor
// always tears down the previous one first, so there is never more than one
// live overlay.
type Sequencer struct {
	store    store.ProductStore
	front    Frontend
	search   string
	rows     []Row
	editable []int
	active   *session
}

type session struct {
	cell    CellRef
	overlay Overlay
}

func NewSequencer(st store.ProductStore, front Frontend) *Sequencer {
	return &Sequencer{
		store:    st,
		front:    front,
		editable: models.EditableIndexes(),
	}
}

// Reload fetches the catalog (honoring the current search term), rebuilds
// the projection and hands the rows to the frontend.
func (s *Sequencer) Reload(ctx context.Context) error {
	products, err := s.store.List(ctx, s.search)
	if err != nil {
		return err
	}
	rows := make([]Row, len(products))
	for i, p := range products {
		rows[i] = ProjectRow(p)
	}
	s.rows = rows
	s.front.RenderRows(rows)
	return nil
}

// Search changes the filter term and reloads.
func (s *Sequencer) Search(ctx context.Context, term string) error {
	s.search = term
	return s.Reload(ctx)
}

// Rows exposes the current projection.
func (s *Sequencer) Rows() []Row {
	return s.rows
}

// ActiveCell reports the cell under edit, if any.
func (s *Sequencer) ActiveCell() (CellRef, bool) {
	if s.active == nil {
		return CellRef{}, false
	}
	return s.active.cell, true
}

// BeginEdit opens an overlay on the given cell. It is a silent no-op when
// the row no longer exists, the column is the identity column, or the
// frontend cannot resolve the cell's geometry. Any previously open editor
// is discarded without saving.
func (s *Sequencer) BeginEdit(rowID int64, col int) {
	s.closeActive()

	if col <= 0 || col >= len(models.Columns) {
		return
	}
	row := s.rowByID(rowID)
	if row == nil {
		return
	}
	cell := CellRef{RowID: rowID, Col: col}
	overlay, ok := s.front.OpenOverlay(cell, row.Cells[col])
	if !ok {
		return
	}
	overlay.SelectAll()
	s.active = &session{cell: cell, overlay: overlay}
}

// Commit validates and persists the active overlay's text. With advance
// set, a successful commit opens the next editable cell after the reload.
//
// The pipeline is deliberately a plain sequence:
// coerce -> project -> persist -> reload -> advance. A validation failure
// keeps the overlay open; a persistence failure reloads the canonical state,
// closes the overlay and never advances.
func (s *Sequencer) Commit(ctx context.Context, advance bool) error {
	if s.active == nil {
		return nil
	}
	cell := s.active.cell
	column := models.Columns[cell.Col]

	normalized, err := CoerceInput(column, s.active.overlay.Text())
	if err != nil {
		s.front.NotifyError(err)
		return err
	}

	row := s.rowByID(cell.RowID)
	if row == nil {
		s.closeActive()
		return nil
	}

	// Optimistic update: the visible projection reflects the edit
	// immediately, before the store round-trip.
	p := row.Product
	if err := ApplyInput(&p, column, normalized); err != nil {
		s.front.NotifyError(err)
		return err
	}
	p.RecomputeTotal()
	*row = ProjectRow(p)
	s.front.RenderRows(s.rows)

	if err := s.store.Update(ctx, &p); err != nil {
		// Duplicate code or store failure: resynchronize from the store,
		// dropping the optimistic edit, and do not advance.
		s.front.NotifyError(err)
		s.closeActive()
		_ = s.Reload(ctx)
		return err
	}

	s.closeActive()
	if err := s.Reload(ctx); err != nil {
		return err
	}
	if advance {
		if next, ok := s.nextTarget(cell); ok {
			s.BeginEdit(next.RowID, next.Col)
		}
	}
	return nil
}

// Cancel discards the active overlay without persisting.
func (s *Sequencer) Cancel() {
	s.closeActive()
}

func (s *Sequencer) closeActive() {
	if s.active != nil {
		s.active.overlay.Close()
		s.active = nil
	}
}

func (s *Sequencer) rowByID(id int64) *Row {
	for i := range s.rows {
		if s.rows[i].Product.ID == id {
			return &s.rows[i]
		}
	}
	return nil
}

// nextTarget finds the cell after cur in fill-in order: editable columns
// left-to-right within the row, then the first editable column of the next
// row, wrapping to the first row after the last.
func (s *Sequencer) nextTarget(cur CellRef) (CellRef, bool) {
	if len(s.rows) == 0 || len(s.editable) == 0 {
		return CellRef{}, false
	}
	rowIdx := -1
	for i := range s.rows {
		if s.rows[i].Product.ID == cur.RowID {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 {
		return CellRef{}, false
	}
	for _, col := range s.editable {
		if col > cur.Col {
			return CellRef{RowID: cur.RowID, Col: col}, true
		}
	}
	next := rowIdx + 1
	if next >= len(s.rows) {
		next = 0
	}
	return CellRef{RowID: s.rows[next].Product.ID, Col: s.editable[0]}, true
}
