package types

// AnswerInput is one locally held draft response. Only the field matching the
// question's type is meaningful; stale fields left behind by an earlier edit of
// a different shape are tolerated and never read. Nil means "absent from this
// edit" so partial edits can be merged without clobbering sibling fields.
type AnswerInput struct {
	QuestionID        int      `json:"question_id"`
	SelectedOptionIDs []int    `json:"selected_option_ids,omitempty"`
	TextAnswer        *string  `json:"text_answer,omitempty"`
	NumericAnswer     *float64 `json:"numeric_answer,omitempty"`
}

func CloneAnswerInput(in AnswerInput) AnswerInput {
	out := in
	if in.SelectedOptionIDs != nil {
		out.SelectedOptionIDs = append([]int{}, in.SelectedOptionIDs...)
	}
	if in.TextAnswer != nil {
		v := *in.TextAnswer
		out.TextAnswer = &v
	}
	if in.NumericAnswer != nil {
		v := *in.NumericAnswer
		out.NumericAnswer = &v
	}
	return out
}

// MergeAnswerInput applies the non-nil fields of patch over base. Fields the
// patch does not carry keep their previous value, so an edit carrying only
// SelectedOptionIDs leaves an earlier TextAnswer in place.
func MergeAnswerInput(base AnswerInput, patch AnswerInput) AnswerInput {
	out := CloneAnswerInput(base)
	out.QuestionID = patch.QuestionID
	if patch.SelectedOptionIDs != nil {
		out.SelectedOptionIDs = append([]int{}, patch.SelectedOptionIDs...)
	}
	if patch.TextAnswer != nil {
		v := *patch.TextAnswer
		out.TextAnswer = &v
	}
	if patch.NumericAnswer != nil {
		v := *patch.NumericAnswer
		out.NumericAnswer = &v
	}
	return out
}
