package classify

import "strings"

// ParseResponse turns the model's line-oriented reply into a Result.
// The explicit "Not Job Application" signal maps to ErrNotApplication;
// anything that doesn't open with a Company line is malformed.
func ParseResponse(raw string) (Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{}, &MalformedError{Reason: "empty response"}
	}
	if strings.Contains(strings.ToLower(raw), "not job application") {
		return Result{}, ErrNotApplication
	}
	if !strings.HasPrefix(strings.ToLower(raw), "company:") {
		return Result{}, &MalformedError{Reason: "missing Company line", Raw: raw}
	}

	var res Result
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "company":
			res.Company = v
		case "position", "job title":
			res.Position = v
		case "location":
			res.Location = v
		case "status":
			res.Status = v
		}
	}

	if res.Company == "" && res.Position == "" && res.Location == "" && res.Status == "" {
		return Result{}, &MalformedError{Reason: "no fields extracted", Raw: raw}
	}
	return res, nil
}
