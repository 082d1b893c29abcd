package transcript

// QAPair binds one advisor question to the client answer that followed it.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PairDialogue walks the utterance sequence once and emits strictly
// sequential, non-overlapping question/answer pairs.
//
// The walk is a two-state machine. A question utterance is held until an
// answer consumes it; a newer question overwrites an unconsumed one, so
// only the most recent unanswered question survives. An answer with no held
// question produces nothing. Statements never touch the held question.
func PairDialogue(utterances []Utterance) []QAPair {
	var pairs []QAPair
	var held string
	holding := false

	for _, u := range utterances {
		switch u.Kind {
		case KindQuestion:
			held = u.Content
			holding = true
		case KindAnswer:
			if holding {
				pairs = append(pairs, QAPair{Question: held, Answer: u.Content})
				holding = false
			}
		}
	}
	return pairs
}
