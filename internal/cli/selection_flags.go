package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/spf13/pflag"
)

// selectionFlags are the flags that describe one job: the three component
// transitions, site flags, and ticked checklist codes.
type selectionFlags struct {
	boiler    string
	cylinder  string
	flue      string
	flags     []string
	selects   []string
	reference string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.boiler, "boiler", "", "boiler change as FROM:TO, or one state when kept")
	fs.StringVar(&f.cylinder, "cylinder", "", "cylinder change as FROM:TO, or one state when kept")
	fs.StringVar(&f.flue, "flue", "", "flue change as FROM:TO, or one state when kept")
	fs.StringSliceVar(&f.flags, "flag", nil, "site flag to set (repeatable, comma-separated)")
	fs.StringArrayVar(&f.selects, "select", nil, `checklist codes as "Section=CODE[,CODE]" (repeatable)`)
	fs.StringVar(&f.reference, "ref", "", "job or work order reference")
}

// hasComponents reports whether any transition was given on the command line.
func (f *selectionFlags) hasComponents() bool {
	return f.boiler != "" || f.cylinder != "" || f.flue != ""
}

func (f *selectionFlags) request() (contract.NotesRequest, error) {
	req := contract.NewNotesRequest()
	req.Reference = f.reference

	var err error
	if req.Boiler, err = parseTransition("boiler", f.boiler); err != nil {
		return req, err
	}
	if req.Cylinder, err = parseTransition("cylinder", f.cylinder); err != nil {
		return req, err
	}
	if req.Flue, err = parseTransition("flue", f.flue); err != nil {
		return req, err
	}

	for _, name := range f.flags {
		name = strings.TrimSpace(name)
		if name == "" {
			return req, &contract.NotesError{Code: contract.ErrInvalidFlag, Message: "empty --flag value"}
		}
		req.Flags = append(req.Flags, name)
	}

	for _, s := range f.selects {
		section, codes, err := parseSelect(s)
		if err != nil {
			return req, err
		}
		for _, c := range codes {
			req.Select(section, c)
		}
	}
	return req, nil
}

// parseTransition reads "from:to". A single state means the component is
// kept as it is; an empty value leaves the component unset.
func parseTransition(component, v string) (domain.Transition, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.Transition{}, nil
	}
	from, to, found := strings.Cut(v, ":")
	if !found {
		return domain.Transition{From: v, To: v}, nil
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" || strings.Contains(to, ":") {
		return domain.Transition{}, fmt.Errorf("invalid --%s %q: want FROM:TO", component, v)
	}
	return domain.Transition{From: from, To: to}, nil
}

// parseSelect reads "Section=CODE[,CODE...]".
func parseSelect(v string) (string, []string, error) {
	section, list, found := strings.Cut(v, "=")
	section = strings.TrimSpace(section)
	if !found || section == "" {
		return "", nil, &contract.NotesError{Code: contract.ErrInvalidSelection, Message: fmt.Sprintf("invalid --select %q: want Section=CODE", v)}
	}
	var codes []string
	for _, c := range strings.Split(list, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return "", nil, &contract.NotesError{Code: contract.ErrInvalidSelection, Message: fmt.Sprintf("invalid --select %q: no codes", v)}
	}
	return section, codes, nil
}
