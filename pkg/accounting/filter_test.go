package accounting

import "testing"

func TestIsComment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"# Version: 6.2u5", true},
		{"#", true},
		// The marker is not anchored to the start of the line.
		{"q:h:g:alice:job#1.sh:1:sge:0:0:1000:2000:1:0", true},
		{"q:h:g:alice:job.sh:1:sge:0:0:1000:2000:1:0", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsComment(tt.line); got != tt.want {
			t.Errorf("IsComment(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestFilter_Selects(t *testing.T) {
	base := Record{User: "alice", EndTime: 2000, Failed: "1", ExitStatus: "0"}
	filter := Filter{User: "alice", Cutoff: 2000}

	tests := []struct {
		name   string
		mutate func(r *Record)
		want   bool
	}{
		{"all predicates hold", func(r *Record) {}, true},
		{"other user", func(r *Record) { r.User = "bob" }, false},
		{"user compared exactly", func(r *Record) { r.User = "Alice" }, false},
		{"ended before cutoff", func(r *Record) { r.EndTime = 1999 }, false},
		{"ended after cutoff", func(r *Record) { r.EndTime = 5000 }, true},
		{"succeeded", func(r *Record) { r.Failed = "0" }, false},
		{"exit status only", func(r *Record) { r.Failed = "0"; r.ExitStatus = "19" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			if got := filter.Selects(r); got != tt.want {
				t.Errorf("Selects() = %v, want %v", got, tt.want)
			}
		})
	}
}
