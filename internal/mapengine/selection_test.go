package mapengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"estatecore/internal/model"
)

func testMarker(id int64, title string) model.MapMarker {
	lat, lng := 25.08, 55.14
	return model.MapMarker{ID: id, Title: title, Lat: &lat, Lng: &lng}
}

func TestSelector_LoadingPopupAppearsImmediately(t *testing.T) {
	sel := NewSelector(nil, nil)

	sel.Select(context.Background(), testMarker(1, "Marina Tower"))

	snap := sel.Snapshot()
	if snap.State != StateLoading {
		t.Fatalf("state = %v, want Loading", snap.State)
	}
	if snap.MarkerID != 1 || snap.Title != "Marina Tower" {
		t.Errorf("loading popup should carry the marker title, got %+v", snap)
	}
	if snap.Details != nil {
		t.Error("details must be nil while loading")
	}
}

func TestSelector_SelectionExclusivity(t *testing.T) {
	sel := NewSelector(nil, nil)

	sel.Select(context.Background(), testMarker(1, "A"))
	if !sel.IsSelected(1) {
		t.Fatal("marker A should be selected")
	}

	sel.Select(context.Background(), testMarker(2, "B"))
	if sel.IsSelected(1) {
		t.Error("marker A must lose the selected state when B is selected")
	}
	if !sel.IsSelected(2) {
		t.Error("marker B should be selected")
	}

	sel.Close()
	if sel.IsSelected(1) || sel.IsSelected(2) {
		t.Error("no marker may stay selected after close")
	}
}

func TestSelector_CompleteInstallsDetails(t *testing.T) {
	sel := NewSelector(nil, nil)

	token := sel.Select(context.Background(), testMarker(1, "A"))
	ok := sel.Complete(token, &model.PropertyDetail{ID: 1, Name: "A"})
	if !ok {
		t.Fatal("completion with the current token must apply")
	}

	snap := sel.Snapshot()
	if snap.State != StateLoaded {
		t.Errorf("state = %v, want Loaded", snap.State)
	}
	if snap.Details == nil || snap.Details.ID != 1 {
		t.Errorf("details = %+v, want property 1", snap.Details)
	}
}

func TestSelector_StaleCompletionDiscarded(t *testing.T) {
	sel := NewSelector(nil, nil)

	staleToken := sel.Select(context.Background(), testMarker(1, "A"))
	sel.Select(context.Background(), testMarker(2, "B"))

	if sel.Complete(staleToken, &model.PropertyDetail{ID: 1, Name: "A"}) {
		t.Fatal("stale completion must be discarded")
	}

	snap := sel.Snapshot()
	if snap.MarkerID != 2 {
		t.Errorf("selection = marker %d, want 2", snap.MarkerID)
	}
	if snap.State != StateLoading {
		t.Errorf("state = %v, want Loading (B's fetch has not landed)", snap.State)
	}
}

func TestSelector_CompletionAfterCloseDiscarded(t *testing.T) {
	sel := NewSelector(nil, nil)

	token := sel.Select(context.Background(), testMarker(1, "A"))
	sel.Close()

	if sel.Complete(token, &model.PropertyDetail{ID: 1}) {
		t.Fatal("completion after close must be discarded")
	}
	if sel.Snapshot().State != StateIdle {
		t.Error("selector must stay idle")
	}
}

func TestSelector_FetchFailureLeavesLoadingPopup(t *testing.T) {
	fetched := make(chan struct{})
	fetch := func(ctx context.Context, id int64) (*model.PropertyDetail, error) {
		close(fetched)
		return nil, errors.New("upstream down")
	}
	sel := NewSelector(fetch, nil)

	sel.Select(context.Background(), testMarker(1, "A"))

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("fetch was never invoked")
	}

	// Give the goroutine a beat; the failure must not change state.
	time.Sleep(10 * time.Millisecond)
	snap := sel.Snapshot()
	if snap.State != StateLoading {
		t.Errorf("state = %v, want Loading after fetch failure", snap.State)
	}
}

func TestSelector_AsyncFetchCompletes(t *testing.T) {
	fetch := func(ctx context.Context, id int64) (*model.PropertyDetail, error) {
		return &model.PropertyDetail{ID: id, Name: "Loaded"}, nil
	}
	sel := NewSelector(fetch, nil)

	sel.Select(context.Background(), testMarker(7, "A"))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sel.Snapshot().State == StateLoaded {
			break
		}
		time.Sleep(time.Millisecond)
	}

	snap := sel.Snapshot()
	if snap.State != StateLoaded || snap.Details == nil || snap.Details.ID != 7 {
		t.Fatalf("expected loaded details for 7, got %+v", snap)
	}
}

func TestSelector_OnSelectCallback(t *testing.T) {
	var selected []int64
	sel := NewSelector(nil, func(id int64) { selected = append(selected, id) })

	sel.Select(context.Background(), testMarker(1, "A"))
	sel.Select(context.Background(), testMarker(2, "B"))

	if len(selected) != 2 || selected[0] != 1 || selected[1] != 2 {
		t.Errorf("onSelect calls = %v, want [1 2]", selected)
	}
}
