package winenv

import (
	"bytes"
	"testing"
	"time"

	"github.com/hexops/autogold/v2"
	"github.com/hexops/winenv/internal/envvar"
)

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRecords(&buf, []envvar.Record{
		{Name: "PATH", ValueKind: envvar.ExpandString, Value: `C:\A;C:\B`, Values: []string{`C:\A`, `C:\B`}},
		{Name: "EDITOR", ValueKind: envvar.None, Value: "code"},
	})
	if err != nil {
		t.Fatal(err)
	}
	autogold.Expect(`Name      : PATH
ValueKind : ExpandString
Value     : C:\A
            C:\B

Name      : EDITOR
ValueKind : None
Value     : code
`).Equal(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, envvar.Record{Name: "PATH", ValueKind: envvar.None, Value: "a;b", Values: []string{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	autogold.Expect(`{
  "Name": "PATH",
  "ValueKind": "None",
  "Value": "a;b",
  "Values": [
    "a",
    "b"
  ]
}
`).Equal(t, buf.String())
}

func TestWriteHistory(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := WriteHistory(&buf, []Entry{
		{Time: now.Add(-3 * time.Hour), Name: "Path", Target: "User", Action: "set", Kind: "ExpandString", Value: "a;b", Previous: "a", HadPrevious: true},
		{Time: now.Add(-2 * time.Minute), Name: "EDITOR", Target: "Process", Action: "delete", Kind: "None", Previous: "vim", HadPrevious: true},
	}, now)
	if err != nil {
		t.Fatal(err)
	}
	autogold.Expect(`3 hours ago: set Path (User, ExpandString)
    was: "a"
    now: "a;b"
2 minutes ago: delete EDITOR (Process, None)
    was: "vim"
`).Equal(t, buf.String())

	buf.Reset()
	if err := WriteHistory(&buf, nil, now); err != nil {
		t.Fatal(err)
	}
	autogold.Expect("no changes recorded\n").Equal(t, buf.String())
}
