package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"httpapi.Handler.GetDraftState", true},
		{"httpapi.Handler.ImportPlayers", true},
		{"httpapi.playerToDTO", false},
		{"httpapi.CORS", false},
		{"usecase.DraftService.DraftPlayer", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := shouldCreateHTTPAPISpan(tc.name); got != tc.want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
