package catalog

import (
	"log/slog"
	"strconv"
	"strings"

	"readtutor/internal/model"
)

// ParseWrongIDs parses a comma-separated wrong-answer list. Three
// encodings are accepted per item:
//
//	"1:2"  exam 1, question 2
//	"1-2"  exam 1, question 2
//	"2"    question 2 of the first default exam (exam 1 when none given)
//
// Unparseable items are logged and skipped, never fatal. An empty
// string yields an empty slice.
func ParseWrongIDs(raw string, defaultExamIDs []int) []model.WrongRef {
	refs := []model.WrongRef{}
	if strings.TrimSpace(raw) == "" {
		return refs
	}

	defaultExam := 1
	if len(defaultExamIDs) > 0 {
		defaultExam = defaultExamIDs[0]
	}

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		var ref model.WrongRef
		var ok bool
		switch {
		case strings.Contains(item, ":"):
			ref, ok = splitRef(item, ":")
		case strings.Contains(item, "-"):
			ref, ok = splitRef(item, "-")
		default:
			num, err := strconv.Atoi(item)
			if err == nil {
				ref = model.WrongRef{ExamID: defaultExam, QuestionNum: num}
				ok = true
			}
		}
		if !ok {
			slog.Warn("skipping unparseable wrong-answer id", "item", item)
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func splitRef(item, sep string) (model.WrongRef, bool) {
	parts := strings.SplitN(item, sep, 2)
	examID, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	questionNum, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return model.WrongRef{}, false
	}
	return model.WrongRef{ExamID: examID, QuestionNum: questionNum}, true
}
