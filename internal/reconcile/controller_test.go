package reconcile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/gravitas-games/boardpredict/pkg/models"
)

type fakePredictor struct {
	orientations map[models.Cell][]int
	spots        map[models.Cell]map[int][]models.Spot
}

func (p *fakePredictor) ValidPlacements() []models.Cell {
	var out []models.Cell
	for c := range p.orientations {
		out = append(out, c)
	}
	return out
}

func (p *fakePredictor) ValidOrientationsAt(cell models.Cell) []int {
	return p.orientations[cell]
}

func (p *fakePredictor) PreviewSecondary(cell models.Cell, orientation int) []models.Spot {
	return p.spots[cell][orientation]
}

type recorder struct {
	sent []models.Action
}

func (r *recorder) Submit(a models.Action) { r.sent = append(r.sent, a) }

type listener struct {
	transitions []State
	choices     [][]models.Action
}

func (l *listener) StateChanged(_, to State)         { l.transitions = append(l.transitions, to) }
func (l *listener) ServerChoices(cs []models.Action) { l.choices = append(l.choices, cs) }

var target = models.Cell{X: 2, Y: 3}

func newPredictor() *fakePredictor {
	return &fakePredictor{
		orientations: map[models.Cell][]int{
			target:        {0, 4, 7},
			{X: 5, Y: 5}:  {1, 2},
			{X: -1, Y: 0}: {3},
		},
		spots: map[models.Cell]map[int][]models.Spot{
			target: {
				0: {"road_NS"},
				4: {"field_W"},
				7: {"field_N", "city_E"},
			},
		},
	}
}

func newController(t *testing.T) (*Controller, *recorder, *listener) {
	t.Helper()
	rec := &recorder{}
	lis := &listener{}
	n := 0
	c := New(rec,
		WithListener(lis),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("a%d", n) }),
	)
	return c, rec, lis
}

func placeSnapshot(turn string, p Predictor) Snapshot {
	return Snapshot{Turn: turn, Phase: models.PhasePlace, Active: true, Predictor: p}
}

func secondarySnapshot(turn string, legal ...models.Action) Snapshot {
	return Snapshot{Turn: turn, Phase: models.PhaseSecondary, Active: true, Legal: legal}
}

func TestStaleBufferFallsBackToServerList(t *testing.T) {
	c, rec, lis := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))

	if !c.Click(target) {
		t.Fatalf("expected click on a legal cell to be taken")
	}
	c.Click(target)
	c.Click(target)
	if _, o, _ := c.Selection(); o != 7 {
		t.Fatalf("expected orientation 7 after cycling twice, got %d", o)
	}
	if c.State() != RotationCycling {
		t.Fatalf("expected RotationCycling, got %v", c.State())
	}
	if got := c.Preview(); !reflect.DeepEqual(got, []models.Spot{"field_N", "city_E"}) {
		t.Fatalf("expected two previewed spots, got %v", got)
	}
	if err := c.PreviewSpot("city_E"); err != nil {
		t.Fatalf("unexpected preview error: %v", err)
	}
	if c.State() != SecondaryChoicePreviewed {
		t.Fatalf("expected SecondaryChoicePreviewed, got %v", c.State())
	}
	if err := c.Confirm("city_E"); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	if len(rec.sent) != 1 || rec.sent[0].Kind != models.ActionPlace || rec.sent[0].Orientation != 7 || rec.sent[0].Cell != target {
		t.Fatalf("expected the placement to be sent at once, got %v", rec.sent)
	}
	if rec.sent[0].ID != "a1" || c.PrimaryID() != "a1" {
		t.Fatalf("expected placement id a1, got %q", rec.sent[0].ID)
	}
	if b, ok := c.Buffered(); !ok || b.Spot != "city_E" {
		t.Fatalf("expected city_E to be buffered, got %v %v", b, ok)
	}

	// unrelated deltas before the secondary phase arrives
	c.Update(Snapshot{Turn: "t1", Phase: models.PhaseWaiting})
	c.Update(placeSnapshot("t1", newPredictor()))
	if c.State() != Submitted || len(rec.sent) != 1 {
		t.Fatalf("expected to keep waiting, state %v sent %d", c.State(), len(rec.sent))
	}

	// a region merge on the server removed city_E
	offered := []models.Action{models.Mark(target, "field_N"), models.Pass()}
	c.Update(secondarySnapshot("t1", append(offered, models.Place(target, 0))...))

	if c.State() != ServerChoice {
		t.Fatalf("expected ServerChoice, got %v", c.State())
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected no automatic submission of the stale choice, got %v", rec.sent)
	}
	if _, ok := c.Buffered(); ok {
		t.Fatalf("expected the stale buffer to be discarded")
	}
	if got := c.ServerChoices(); !reflect.DeepEqual(got, offered) {
		t.Fatalf("expected server list %v, got %v", offered, got)
	}
	if len(lis.choices) != 1 || !reflect.DeepEqual(lis.choices[0], offered) {
		t.Fatalf("expected listener to be shown the server list, got %v", lis.choices)
	}

	if err := c.Choose(models.Mark(target, "city_E")); !errors.Is(err, ErrChoiceNotOffered) {
		t.Fatalf("expected ErrChoiceNotOffered, got %v", err)
	}
	if err := c.Choose(models.Mark(models.Cell{}, "field_N")); err != nil {
		t.Fatalf("unexpected choose error: %v", err)
	}
	if len(rec.sent) != 2 || rec.sent[1].Spot != "field_N" || rec.sent[1].ID != "a2" {
		t.Fatalf("expected field_N to be sent as a2, got %v", rec.sent)
	}
	if c.State() != Submitted {
		t.Fatalf("expected Submitted after choosing, got %v", c.State())
	}
}

func TestBufferedChoiceReplayed(t *testing.T) {
	c, rec, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	c.Click(target)
	c.Click(target)
	if err := c.Confirm("city_E"); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}

	legal := []models.Action{
		{ID: "srv-7", Kind: models.ActionMark, Cell: target, Spot: "city_E"},
		models.Pass(),
	}
	c.Update(secondarySnapshot("t1", legal...))
	if len(rec.sent) != 2 {
		t.Fatalf("expected the buffered choice to be sent, got %v", rec.sent)
	}
	if rec.sent[1].Spot != "city_E" || rec.sent[1].ID != "srv-7" {
		t.Fatalf("expected the server's city_E action, got %v", rec.sent[1])
	}
	if _, ok := c.Buffered(); ok {
		t.Fatalf("expected the buffer to be cleared")
	}

	// a repeated delta must not resend
	c.Update(secondarySnapshot("t1", legal...))
	if len(rec.sent) != 2 {
		t.Fatalf("expected no resubmission, got %v", rec.sent)
	}
	if c.State() != Submitted {
		t.Fatalf("expected Submitted, got %v", c.State())
	}
}

func TestPassReplayed(t *testing.T) {
	c, rec, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	if err := c.Confirm(""); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	c.Update(secondarySnapshot("t1", models.Mark(target, "road_NS"), models.Pass()))
	if len(rec.sent) != 2 || rec.sent[1].Kind != models.ActionPass {
		t.Fatalf("expected pass to be sent, got %v", rec.sent)
	}
}

func TestTurnChangeResets(t *testing.T) {
	c, rec, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	if err := c.Confirm("road_NS"); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	c.Update(Snapshot{Turn: "t2", Phase: models.PhaseWaiting})
	if c.State() != Idle {
		t.Fatalf("expected Idle after turn change, got %v", c.State())
	}
	if _, ok := c.Buffered(); ok {
		t.Fatalf("expected the buffer to be cleared on turn change")
	}
	c.Update(Snapshot{Turn: "t2", Phase: models.PhaseSecondary, Legal: []models.Action{models.Mark(target, "road_NS")}})
	if len(rec.sent) != 1 {
		t.Fatalf("expected nothing replayed into another turn, got %v", rec.sent)
	}

	// a selection is dropped too
	c.Update(placeSnapshot("t3", newPredictor()))
	c.Click(target)
	c.Update(placeSnapshot("t4", newPredictor()))
	if c.State() != Idle {
		t.Fatalf("expected Idle, got %v", c.State())
	}
	if c.Turn() != "t4" {
		t.Fatalf("expected turn t4, got %s", c.Turn())
	}
}

func TestCycleWrapsAround(t *testing.T) {
	c, _, lis := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	cell := models.Cell{X: 5, Y: 5}
	want := []int{1, 2, 1}
	for i, w := range want {
		c.Click(cell)
		if _, o, _ := c.Selection(); o != w {
			t.Fatalf("click %d: expected orientation %d, got %d", i, w, o)
		}
	}
	if got := lis.transitions; !reflect.DeepEqual(got, []State{CellSelected, RotationCycling}) {
		t.Fatalf("expected CellSelected then RotationCycling, got %v", got)
	}

	// a different cell starts over at its first orientation
	c.Click(target)
	if cell, o, _ := c.Selection(); cell != target || o != 0 || c.State() != CellSelected {
		t.Fatalf("expected %v at 0 in CellSelected, got %v at %d in %v", target, cell, o, c.State())
	}
}

func TestClickRejected(t *testing.T) {
	c, _, _ := newController(t)
	if c.Click(target) {
		t.Fatalf("expected click without a snapshot to be ignored")
	}
	c.Update(placeSnapshot("t1", newPredictor()))
	if c.Click(models.Cell{X: 40, Y: 40}) {
		t.Fatalf("expected click on an illegal cell to be ignored")
	}
	if c.State() != Idle {
		t.Fatalf("expected Idle, got %v", c.State())
	}
	s := placeSnapshot("t1", newPredictor())
	s.Active = false
	c.Update(s)
	if c.Click(target) {
		t.Fatalf("expected click while not acting to be ignored")
	}
	if c.ValidPlacements() != nil || c.ValidOrientationsAt(target) != nil {
		t.Fatalf("expected no placements while not acting")
	}
}

func TestMisuseErrors(t *testing.T) {
	c, _, _ := newController(t)
	if err := c.Confirm("x"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if err := c.PreviewSpot("x"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if err := c.Choose(models.Pass()); !errors.Is(err, ErrNotAwaitingChoice) {
		t.Fatalf("expected ErrNotAwaitingChoice, got %v", err)
	}
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	if err := c.PreviewSpot("city_E"); !errors.Is(err, ErrChoiceNotOffered) {
		t.Fatalf("expected ErrChoiceNotOffered at orientation 0, got %v", err)
	}
}

func TestConfirmUnlistedSpotStillPlaces(t *testing.T) {
	c, rec, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	if err := c.Confirm("city_E"); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	if len(rec.sent) != 1 || rec.sent[0].Kind != models.ActionPlace {
		t.Fatalf("expected placement to go out, got %v", rec.sent)
	}
}

func TestRevalidateOnSnapshot(t *testing.T) {
	c, _, _ := newController(t)
	p := newPredictor()
	c.Update(placeSnapshot("t1", p))
	c.Click(target)
	c.Click(target)
	c.Click(target)
	if err := c.PreviewSpot("city_E"); err != nil {
		t.Fatalf("unexpected preview error: %v", err)
	}

	// same turn, orientation 4 gone: the selection keeps orientation 7
	next := newPredictor()
	next.orientations[target] = []int{0, 7}
	c.Update(placeSnapshot("t1", next))
	if _, o, ok := c.Selection(); !ok || o != 7 {
		t.Fatalf("expected orientation 7 to survive, got %d %v", o, ok)
	}
	if spot, ok := c.Previewed(); !ok || spot != "city_E" {
		t.Fatalf("expected city_E to stay previewed, got %q %v", spot, ok)
	}

	// city_E no longer previewable
	next.spots[target][7] = []models.Spot{"field_N"}
	c.Update(placeSnapshot("t1", next))
	if c.State() != CellSelected {
		t.Fatalf("expected CellSelected once the previewed spot vanished, got %v", c.State())
	}

	// the cell itself became illegal
	delete(next.orientations, target)
	c.Update(placeSnapshot("t1", next))
	if c.State() != Idle {
		t.Fatalf("expected Idle once the cell became illegal, got %v", c.State())
	}
}

func TestResyncAfterRejection(t *testing.T) {
	c, _, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	if err := c.Confirm("road_NS"); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	c.Resync()
	if c.State() != Idle {
		t.Fatalf("expected Idle after resync, got %v", c.State())
	}
	if _, ok := c.Buffered(); ok {
		t.Fatalf("expected buffer cleared after resync")
	}
	c.Update(placeSnapshot("t1", newPredictor()))
	if !c.Click(target) {
		t.Fatalf("expected a fresh selection after resync")
	}
}

func TestSecondaryPhaseWithoutBuffer(t *testing.T) {
	c, rec, lis := newController(t)
	offered := []models.Action{models.Mark(target, "field_N"), models.Pass()}
	c.Update(secondarySnapshot("t1", offered...))
	if c.State() != ServerChoice {
		t.Fatalf("expected ServerChoice when joining mid-turn, got %v", c.State())
	}
	if len(lis.choices) != 1 {
		t.Fatalf("expected the listener to be shown the server list")
	}
	c.Update(Snapshot{Turn: "t1", Phase: models.PhaseWaiting})
	if c.State() != Idle {
		t.Fatalf("expected Idle once the server left the phase, got %v", c.State())
	}
	if len(rec.sent) != 0 {
		t.Fatalf("expected nothing sent, got %v", rec.sent)
	}
}

func TestEmptyServerListDoesNotStrand(t *testing.T) {
	c, rec, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	if err := c.Confirm("road_NS"); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	c.Update(secondarySnapshot("t1"))
	if c.State() == ServerChoice {
		t.Fatalf("expected no picker for an empty list")
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected nothing but the placement, got %v", rec.sent)
	}
}

func TestCancel(t *testing.T) {
	c, _, _ := newController(t)
	c.Update(placeSnapshot("t1", newPredictor()))
	c.Click(target)
	c.Cancel()
	if c.State() != Idle || c.Preview() != nil {
		t.Fatalf("expected Idle with no preview after cancel")
	}
}

func TestStateString(t *testing.T) {
	if ServerChoice.String() != "ServerChoice" || State(99).String() != "Unknown" {
		t.Fatalf("unexpected state names")
	}
}
