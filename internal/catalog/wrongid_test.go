package catalog

import (
	"reflect"
	"testing"

	"readtutor/internal/model"
)

func TestParseWrongIDs(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		defaultExam []int
		want        []model.WrongRef
	}{
		{
			name: "colon format",
			raw:  "1:2,1:4",
			want: []model.WrongRef{{ExamID: 1, QuestionNum: 2}, {ExamID: 1, QuestionNum: 4}},
		},
		{
			name: "hyphen format",
			raw:  "1-2,2-3",
			want: []model.WrongRef{{ExamID: 1, QuestionNum: 2}, {ExamID: 2, QuestionNum: 3}},
		},
		{
			name: "bare numbers use default exam",
			raw:  "1,2,3",
			want: []model.WrongRef{{ExamID: 1, QuestionNum: 1}, {ExamID: 1, QuestionNum: 2}, {ExamID: 1, QuestionNum: 3}},
		},
		{
			name:        "bare numbers with explicit default",
			raw:         "2,5",
			defaultExam: []int{3},
			want:        []model.WrongRef{{ExamID: 3, QuestionNum: 2}, {ExamID: 3, QuestionNum: 5}},
		},
		{
			name:        "mixed formats",
			raw:         "1:2,1-3,4",
			defaultExam: []int{1},
			want:        []model.WrongRef{{ExamID: 1, QuestionNum: 2}, {ExamID: 1, QuestionNum: 3}, {ExamID: 1, QuestionNum: 4}},
		},
		{
			name: "unparseable items skipped",
			raw:  "1:2,abc,x-y,2:3",
			want: []model.WrongRef{{ExamID: 1, QuestionNum: 2}, {ExamID: 2, QuestionNum: 3}},
		},
		{
			name: "whitespace tolerated",
			raw:  " 1:2 , 2:3 ",
			want: []model.WrongRef{{ExamID: 1, QuestionNum: 2}, {ExamID: 2, QuestionNum: 3}},
		},
		{
			name: "empty input",
			raw:  "",
			want: []model.WrongRef{},
		},
		{
			name: "nothing parseable",
			raw:  "foo,bar",
			want: []model.WrongRef{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWrongIDs(tt.raw, tt.defaultExam)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWrongIDs(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
