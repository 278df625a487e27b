package rail

import "testing"

func TestTrackEnds_EveryPieceTouchesTwoEdges(t *testing.T) {
	for _, track := range AllTracks() {
		a, b := track.Ends()
		if !a.IsValid() || !b.IsValid() {
			t.Errorf("%v.Ends() = %v, %v; want two valid edges", track, a, b)
		}
		if a == b {
			t.Errorf("%v.Ends() returned the same edge twice: %v", track, a)
		}
	}
}

func TestOtherEnd_RoundTrips(t *testing.T) {
	for _, track := range AllTracks() {
		a, b := track.Ends()
		if got := track.OtherEnd(a); got != b {
			t.Errorf("%v.OtherEnd(%v) = %v, want %v", track, a, got, b)
		}
		if got := track.OtherEnd(b); got != a {
			t.Errorf("%v.OtherEnd(%v) = %v, want %v", track, b, got, a)
		}
	}
}

func TestOtherEnd_NonIncidentEdgeIsNone(t *testing.T) {
	if got := TrackEW.OtherEnd(North); got != SideNone {
		t.Errorf("TrackEW.OtherEnd(North) = %v, want SideNone", got)
	}
}

func TestTracksFromSide_MatchesPieceEnds(t *testing.T) {
	for _, s := range AllSides() {
		mask := TracksFromSide(s)
		for _, track := range AllTracks() {
			want := track.HasEnd(s)
			if got := mask.Has(track); got != want {
				t.Errorf("TracksFromSide(%v).Has(%v) = %v, want %v", s, track, got, want)
			}
		}
	}
}

func TestSingle_EmptyAndMultiPieceMasks(t *testing.T) {
	if got := BitNone.Single(); got != TrackInvalid {
		t.Errorf("BitNone.Single() = %v, want TrackInvalid", got)
	}
	if got := (BitNS | BitEW).Single(); got != TrackInvalid {
		t.Errorf("(BitNS|BitEW).Single() = %v, want TrackInvalid", got)
	}
	if got := BitSW.Single(); got != TrackSW {
		t.Errorf("BitSW.Single() = %v, want TrackSW", got)
	}
}

func TestTrackdirEntering_HeadsForTheFarEnd(t *testing.T) {
	td := TrackdirEntering(TrackEW, West)
	if td.Toward != East {
		t.Errorf("entering EW from West heads %v, want East", td.Toward)
	}
	td = TrackdirEntering(TrackNE, North)
	if td.Toward != East {
		t.Errorf("entering NE from North heads %v, want East", td.Toward)
	}
}

func TestTrackdirReverse_FlipsHeading(t *testing.T) {
	td := Trackdir{Track: TrackNS, Toward: North}
	if got := td.Reverse().Toward; got != South {
		t.Errorf("reverse of NS toward North heads %v, want South", got)
	}
	if got := td.Reverse().Reverse(); got != td {
		t.Errorf("double reverse = %v, want %v", got, td)
	}
}

func TestEndIndex_DistinguishesTheTwoEnds(t *testing.T) {
	for _, track := range AllTracks() {
		a, b := track.Ends()
		ia, ib := track.EndIndex(a), track.EndIndex(b)
		if ia == ib || ia < 0 || ib < 0 {
			t.Errorf("%v.EndIndex: got %d and %d for its own ends", track, ia, ib)
		}
	}
	if got := TrackNS.EndIndex(East); got != -1 {
		t.Errorf("TrackNS.EndIndex(East) = %d, want -1", got)
	}
}

func TestSideOpposite_RoundTrips(t *testing.T) {
	for _, s := range AllSides() {
		if got := s.Opposite().Opposite(); got != s {
			t.Errorf("%v.Opposite().Opposite() = %v, want %v", s, got, s)
		}
	}
}
