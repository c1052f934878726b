package winenv

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hexops/winenv/internal/envvar"
)

// WriteRecords prints records in a "Name : value" listing, one block per record.
func WriteRecords(w io.Writer, records []envvar.Record) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		values := r.Values
		if values == nil {
			values = []string{r.Value}
		}
		const indent = "            "
		_, err := fmt.Fprintf(w, "Name      : %s\nValueKind : %s\nValue     : %s\n",
			r.Name,
			r.ValueKind,
			strings.Join(values, "\n"+indent),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteHistory prints entries relative to now.
func WriteHistory(w io.Writer, entries []Entry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no changes recorded")
		return err
	}
	for _, e := range entries {
		when := humanize.RelTime(e.Time, now, "ago", "from now")
		if _, err := fmt.Fprintf(w, "%s: %s %s (%s, %s)\n", when, e.Action, e.Name, e.Target, e.Kind); err != nil {
			return err
		}
		if e.HadPrevious {
			if _, err := fmt.Fprintf(w, "    was: %q\n", e.Previous); err != nil {
				return err
			}
		}
		if e.Action != envvar.ActionDelete.String() {
			if _, err := fmt.Fprintf(w, "    now: %q\n", e.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
