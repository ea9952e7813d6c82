package snapshot

import "testing"

func TestDaySelectionResolve(t *testing.T) {
	sel := NewDaySelection(1, 30)
	if sel.State() != AwaitingSelection {
		t.Fatalf("initial state = %v", sel.State())
	}

	sel.Resolve()
	if sel.State() != Resolved || sel.Day() != 1 {
		t.Errorf("state = %v day = %d after resolve, want resolved/1", sel.State(), sel.Day())
	}
}

func TestDaySelectionOfferAndChoose(t *testing.T) {
	sel := NewDaySelection(1, 30)

	sel.Offer([]int64{7, 3, 7, 5, 3})
	choices := sel.Choices()
	if len(choices) != 3 || choices[0] != 3 || choices[2] != 7 {
		t.Fatalf("choices = %v, want deduped ascending [3 5 7]", choices)
	}

	if err := sel.Choose(5); err != nil {
		t.Fatal(err)
	}
	if sel.Day() != 5 {
		t.Errorf("day = %d after choose, want 5", sel.Day())
	}
	if sel.State() != AwaitingSelection {
		t.Error("choosing a day ended the negotiation before the retry resolved")
	}

	sel.Resolve()
	if sel.State() != Resolved {
		t.Error("selection did not resolve after retry")
	}
}

func TestDaySelectionEmptyOfferCancels(t *testing.T) {
	sel := NewDaySelection(1, 30)
	sel.Offer(nil)
	if sel.State() != Cancelled {
		t.Errorf("state = %v after empty offer, want cancelled", sel.State())
	}
}

func TestDaySelectionRejectsUnofferedDay(t *testing.T) {
	sel := NewDaySelection(1, 30)
	sel.Offer([]int64{3, 5})

	if err := sel.Choose(9); err == nil {
		t.Error("Choose() accepted a day that was never offered")
	}
	if err := sel.Choose(5); err != nil {
		t.Errorf("Choose(5) rejected an offered day: %v", err)
	}
}

func TestDaySelectionRejectsDayOverMax(t *testing.T) {
	sel := NewDaySelection(1, 30)
	sel.Offer([]int64{45})

	if err := sel.Choose(45); err == nil {
		t.Error("Choose() accepted a day past the allowed window")
	}
}

func TestDaySelectionOfferCapsChoices(t *testing.T) {
	sel := NewDaySelection(1, 90)

	days := make([]int64, 0, 40)
	for i := int64(1); i <= 40; i++ {
		days = append(days, i)
	}
	sel.Offer(days)

	if len(sel.Choices()) != MaxSelectionChoices {
		t.Errorf("choices = %d, want cap %d", len(sel.Choices()), MaxSelectionChoices)
	}
}

func TestDaySelectionCancelIsTerminal(t *testing.T) {
	sel := NewDaySelection(1, 30)
	sel.Cancel()

	if sel.State() != Cancelled {
		t.Fatal("Cancel() did not cancel")
	}
	sel.Resolve()
	if sel.State() != Cancelled {
		t.Error("Resolve() escaped the cancelled state")
	}
	if err := sel.Choose(3); err == nil {
		t.Error("Choose() succeeded on a cancelled selection")
	}
}
