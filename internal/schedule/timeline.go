package schedule

import "sort"

// Cell states for the hourly grid. Locked means the desk itself is
// administratively unavailable, occupied means a booking covers the
// hour, available means the slot can be clicked to book.
const (
	CellAvailable = "AVAILABLE"
	CellOccupied  = "OCCUPIED"
	CellLocked    = "LOCKED"
)

// Window is the visible hour range of the timeline, [From, To) in
// whole hours. The underlying math always runs over the full day; the
// window only affects which cells are emitted and how blocks are
// clamped and positioned.
type Window struct {
	From int
	To   int
}

// FullDay is the default 24-hour window.
var FullDay = Window{From: 0, To: 24}

// Span returns the window width in hours.
func (w Window) Span() float64 { return float64(w.To - w.From) }

// Valid reports whether the window is a sane sub-range of the day.
func (w Window) Valid() bool {
	return w.From >= 0 && w.To <= 24 && w.From < w.To
}

// Desk is the input row for timeline construction: one bookable space
// together with its non-cancelled bookings for the target date.
type Desk struct {
	ID          uint64
	FloorID     uint64
	FloorName   string
	Name        string
	Capacity    uint32
	Unavailable bool
	Bookings    []Booking
}

// Cell is one hour slot on a desk row.
type Cell struct {
	Hour  int    `json:"hour"`
	State string `json:"state"`
}

// Block is a booking rendered on a desk row. Left and Width are
// fractions of the visible window (0..1) so a client can position the
// block with pure CSS; Start and End are the clamped fractional hours
// it spans. Mine marks bookings owned by the requesting user, which
// the client colors differently.
type Block struct {
	BookingID uint64  `json:"booking_id"`
	UserID    uint64  `json:"user_id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Mine      bool    `json:"mine"`
}

// DeskRow is one rendered desk: its resting cell states plus the
// positioned booking blocks.
type DeskRow struct {
	DeskID      uint64  `json:"desk_id"`
	Name        string  `json:"name"`
	Capacity    uint32  `json:"capacity"`
	Unavailable bool    `json:"unavailable"`
	Cells       []Cell  `json:"cells"`
	Blocks      []Block `json:"blocks"`
}

// FloorSection groups desk rows under a floor header.
type FloorSection struct {
	FloorID uint64    `json:"floor_id"`
	Name    string    `json:"name"`
	Desks   []DeskRow `json:"desks"`
}

// BuildTimeline lays out the calendar grid for one date: desks grouped
// under their floors (sorted by floor name), one row per desk with a
// state per visible hour cell and proportionally positioned booking
// blocks. Bookings entirely outside the window produce no block;
// partially visible ones are clamped to the window edges. currentUser
// controls the Mine flag on blocks.
func BuildTimeline(desks []Desk, window Window, currentUser uint64) []FloorSection {
	if !window.Valid() {
		window = FullDay
	}
	byFloor := make(map[uint64]*FloorSection)
	order := []uint64{}
	for _, d := range desks {
		sec, ok := byFloor[d.FloorID]
		if !ok {
			sec = &FloorSection{FloorID: d.FloorID, Name: d.FloorName}
			byFloor[d.FloorID] = sec
			order = append(order, d.FloorID)
		}
		sec.Desks = append(sec.Desks, buildRow(d, window, currentUser))
	}
	out := make([]FloorSection, 0, len(order))
	for _, id := range order {
		out = append(out, *byFloor[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func buildRow(d Desk, window Window, currentUser uint64) DeskRow {
	row := DeskRow{
		DeskID:      d.ID,
		Name:        d.Name,
		Capacity:    d.Capacity,
		Unavailable: d.Unavailable,
		Cells:       make([]Cell, 0, window.To-window.From),
	}
	for h := window.From; h < window.To; h++ {
		state := CellAvailable
		if d.Unavailable {
			state = CellLocked
		} else if !SlotAvailable(false, d.Bookings, h) {
			state = CellOccupied
		}
		row.Cells = append(row.Cells, Cell{Hour: h, State: state})
	}
	span := window.Span()
	for _, b := range d.Bookings {
		if b.Cancelled {
			continue
		}
		start, end := b.Start, EffectiveEnd(b)
		// clamp to the visible window; skip fully hidden bookings
		if start < float64(window.From) {
			start = float64(window.From)
		}
		if end > float64(window.To) {
			end = float64(window.To)
		}
		if end <= start {
			continue
		}
		row.Blocks = append(row.Blocks, Block{
			BookingID: b.ID,
			UserID:    b.UserID,
			Start:     start,
			End:       end,
			Left:      (start - float64(window.From)) / span,
			Width:     (end - start) / span,
			Mine:      b.UserID == currentUser,
		})
	}
	return row
}
