package server

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

// applyPosted replays a posted form through f's controls so values pass the
// same conversions as browser events. It returns the messages of dates that
// could not be parsed, keyed by field name.
func applyPosted(f *form.Form, posted url.Values) (map[string]string, error) {
	driver := f.Driver()
	invalid := make(map[string]string)
	for _, ctl := range f.Controls() {
		if ctl.Field.Disabled {
			continue
		}
		name := ctl.Field.Name
		var err error
		switch kind := ctl.Resolution.Kind; {
		case kind == controls.KindSelect:
			err = driver.Select(ctl, nonEmpty(posted[name])...)
		case kind.Toggle():
			err = driver.Set(ctl, posted.Get(name))
		case kind == controls.KindDatepicker:
			raw := strings.TrimSpace(posted.Get(name))
			opts, _ := ctl.Resolution.Options.(*model.DatepickerOptions)
			if raw != "" {
				if _, ok := controls.ParseDate(raw, opts); !ok {
					invalid[name] = fmt.Sprintf("Invalid date, expected %s", opts.Layout())
				}
			}
			if raw == "" {
				f.Engine().SetFieldValue(name, nil)
				err = driver.Blur(ctl)
			} else {
				err = driver.Set(ctl, raw)
			}
		default:
			err = driver.Set(ctl, posted.Get(name))
		}
		if err != nil {
			return nil, err
		}
	}
	return invalid, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
