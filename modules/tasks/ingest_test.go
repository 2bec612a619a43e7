package tasks

import (
	"strings"
	"testing"
)

func TestParseRows(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Row
		wantErr bool
	}{
		{
			name:  "standard header",
			input: "FirstName,Phone,Notes\nAlice,5550001,call back\nBob,5550002,",
			want: []Row{
				{FirstName: "Alice", Phone: "5550001", Notes: "call back"},
				{FirstName: "Bob", Phone: "5550002", Notes: ""},
			},
		},
		{
			name:  "lowercase header variant",
			input: "firstName,phone,notes\nCarol,5550003,priority",
			want: []Row{
				{FirstName: "Carol", Phone: "5550003", Notes: "priority"},
			},
		},
		{
			name:  "reordered columns",
			input: "notes,firstname,phone\nfollow up,Dave,5550004",
			want: []Row{
				{FirstName: "Dave", Phone: "5550004", Notes: "follow up"},
			},
		},
		{
			name:  "missing notes column",
			input: "FirstName,Phone\nErin,5550005",
			want: []Row{
				{FirstName: "Erin", Phone: "5550005", Notes: ""},
			},
		},
		{
			name:  "blank and whitespace-only rows are skipped",
			input: "FirstName,Phone,Notes\nAlice,5550001,x\n\n ,,\nBob,5550002,y\n",
			want: []Row{
				{FirstName: "Alice", Phone: "5550001", Notes: "x"},
				{FirstName: "Bob", Phone: "5550002", Notes: "y"},
			},
		},
		{
			name:  "fields are trimmed",
			input: "FirstName, Phone, Notes\n Alice , 5550001 , hello ",
			want: []Row{
				{FirstName: "Alice", Phone: "5550001", Notes: "hello"},
			},
		},
		{
			name:  "header only yields no rows",
			input: "FirstName,Phone,Notes\n",
			want:  nil,
		},
		{
			name:  "empty input yields no rows",
			input: "",
			want:  nil,
		},
		{
			name:    "unterminated quote fails",
			input:   "FirstName,Phone,Notes\n\"Alice,5550001,x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseRows(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRows() error = %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, row := range rows {
				if row != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, row, tt.want[i])
				}
			}
		})
	}
}
