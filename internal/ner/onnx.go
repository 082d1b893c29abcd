package ner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// conllLabels is the output head ordering of CoNLL-finetuned BERT
// checkpoints (dbmdz/bert-large-cased-finetuned-conll03-english and its
// distilled variants).
var conllLabels = []string{
	"O",
	"B-MISC", "I-MISC",
	"B-PER", "I-PER",
	"B-ORG", "I-ORG",
	"B-LOC", "I-LOC",
}

// ONNXRecognizer runs a BERT token-classification model exported to ONNX.
// Construction is cheap; the model and tokenizer load lazily on first use
// so the CLI stays fast when no transcript mentions entities worth the
// model. Safe for concurrent use after the first successful Recognize.
type ONNXRecognizer struct {
	modelPath     string
	tokenizerPath string

	once    sync.Once
	initErr error
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession

	runMu sync.Mutex
}

// NewONNXRecognizer builds a recognizer for the given ONNX model and
// HuggingFace tokenizer.json. Paths are not checked until first use.
func NewONNXRecognizer(modelPath, tokenizerPath string) *ONNXRecognizer {
	return &ONNXRecognizer{modelPath: modelPath, tokenizerPath: tokenizerPath}
}

func (r *ONNXRecognizer) init() error {
	r.once.Do(func() {
		if !ort.IsInitialized() {
			if err := ort.InitializeEnvironment(); err != nil {
				r.initErr = fmt.Errorf("initializing onnxruntime: %w", err)
				return
			}
		}

		tk, err := pretrained.FromFile(r.tokenizerPath)
		if err != nil {
			r.initErr = fmt.Errorf("loading tokenizer %s: %w", r.tokenizerPath, err)
			return
		}

		session, err := ort.NewDynamicAdvancedSession(r.modelPath,
			[]string{"input_ids", "attention_mask", "token_type_ids"},
			[]string{"logits"}, nil)
		if err != nil {
			r.initErr = fmt.Errorf("loading model %s: %w", r.modelPath, err)
			return
		}

		r.tk = tk
		r.session = session
	})
	return r.initErr
}

// Close releases the ONNX session. Safe to call on a recognizer that was
// never used.
func (r *ONNXRecognizer) Close() error {
	if r.session != nil {
		return r.session.Destroy()
	}
	return nil
}

// Recognize tags text and returns merged entity spans in document order.
func (r *ONNXRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := r.init(); err != nil {
		return nil, err
	}

	encoding, err := r.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}
	n := len(encoding.Ids)
	if n == 0 {
		return nil, nil
	}

	ids := make([]int64, n)
	mask := make([]int64, n)
	types := make([]int64, n)
	for i, id := range encoding.Ids {
		ids[i] = int64(id)
		mask[i] = 1
	}

	shape := ort.NewShape(1, int64(n))
	idsT, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer idsT.Destroy()
	maskT, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("mask tensor: %w", err)
	}
	defer maskT.Destroy()
	typesT, err := ort.NewTensor(shape, types)
	if err != nil {
		return nil, fmt.Errorf("type tensor: %w", err)
	}
	defer typesT.Destroy()

	logitsT, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(n), int64(len(conllLabels))))
	if err != nil {
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	defer logitsT.Destroy()

	r.runMu.Lock()
	err = r.session.Run(
		[]ort.Value{idsT, maskT, typesT},
		[]ort.Value{logitsT})
	r.runMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("running model: %w", err)
	}

	return mergeSpans(encoding.Tokens, tagTokens(logitsT.GetData(), n)), nil
}

// tagTokens argmaxes the per-token logits into label strings.
func tagTokens(logits []float32, n int) []string {
	tags := make([]string, n)
	width := len(conllLabels)
	for i := 0; i < n; i++ {
		row := logits[i*width : (i+1)*width]
		best := 0
		for j := 1; j < width; j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		tags[i] = conllLabels[best]
	}
	return tags
}

// mergeSpans folds BIO tags back into Entity values, rejoining WordPiece
// subwords and extending spans across I- continuations of the same label.
func mergeSpans(tokens []string, tags []string) []Entity {
	var entities []Entity
	var cur *Entity

	flush := func() {
		if cur != nil && cur.Text != "" {
			entities = append(entities, *cur)
		}
		cur = nil
	}

	for i, tok := range tokens {
		if tok == "[CLS]" || tok == "[SEP]" || tok == "[PAD]" {
			flush()
			continue
		}
		tag := tags[i]
		if tag == "O" {
			// Subword continuations keep their entity even when the
			// model tags them O.
			if cur != nil && strings.HasPrefix(tok, "##") {
				cur.Text += strings.TrimPrefix(tok, "##")
				continue
			}
			flush()
			continue
		}

		label := strings.TrimPrefix(strings.TrimPrefix(tag, "B-"), "I-")
		subword := strings.HasPrefix(tok, "##")
		switch {
		case cur != nil && cur.Label == label && subword:
			cur.Text += strings.TrimPrefix(tok, "##")
		case cur != nil && cur.Label == label && strings.HasPrefix(tag, "I-"):
			cur.Text += " " + tok
		default:
			flush()
			cur = &Entity{Text: strings.TrimPrefix(tok, "##"), Label: label}
		}
	}
	flush()
	return entities
}
