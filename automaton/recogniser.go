package automaton

import (
	"sort"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"

	"github.com/nihei9/ctfparse/weight"
)

// entry is what actually lives on the agenda: a configuration, the run
// that produced it, and a monotonic insertion sequence number used to
// make the ordering deterministic when two entries have equal weight.
type entry[S any, I Keyed, W any] struct {
	cfg Configuration[S, W]
	run Run[I, W]
	seq uint64
}

func comparator[S any, I Keyed, W weight.Weight[W]]() utils.Comparator {
	return func(a, b interface{}) int {
		ea := a.(entry[S, I, W])
		eb := b.(entry[S, I, W])
		switch {
		case ea.cfg.Weight.Less(eb.cfg.Weight):
			return 1 // a is lower priority, sorts after b in a min-heap
		case eb.cfg.Weight.Less(ea.cfg.Weight):
			return -1
		case ea.seq < eb.seq:
			return -1
		case ea.seq > eb.seq:
			return 1
		default:
			return 0
		}
	}
}

// Recogniser is the lazy, pull-based best-first search over
// (Configuration, Run) states. Callers drive it with Next or Take;
// nothing runs until pulled.
type Recogniser[S any, I Keyed, W weight.Weight[W]] struct {
	automaton Automaton[S, I, W]
	agenda    *priorityqueue.Queue
	beam      int // 0 means unbounded
	nextSeq   uint64
}

// Recognise seeds a Recogniser with one agenda entry per initial storage
// and the full input word, weighted at the multiplicative identity.
func Recognise[S any, I Keyed, W weight.Weight[W]](a Automaton[S, I, W], one W, word []Code) *Recogniser[S, I, W] {
	return newRecogniser(a, one, word, 0)
}

// RecogniseBeam is Recognise with the agenda truncated to its top beam
// entries after every pop.
func RecogniseBeam[S any, I Keyed, W weight.Weight[W]](a Automaton[S, I, W], one W, word []Code, beam int) *Recogniser[S, I, W] {
	return newRecogniser(a, one, word, beam)
}

func newRecogniser[S any, I Keyed, W weight.Weight[W]](a Automaton[S, I, W], one W, word []Code, beam int) *Recogniser[S, I, W] {
	r := &Recogniser[S, I, W]{
		automaton: a,
		agenda:    priorityqueue.NewWith(comparator[S, I, W]()),
		beam:      beam,
	}
	r.enqueue(Configuration[S, W]{Word: word, Storage: a.Initial(), Weight: one}, Run[I, W]{})
	return r
}

func (r *Recogniser[S, I, W]) enqueue(cfg Configuration[S, W], run Run[I, W]) {
	r.agenda.Enqueue(entry[S, I, W]{cfg: cfg, run: run, seq: r.nextSeq})
	r.nextSeq++
}

// Next pops the best-weighted agenda entry, expands its successors, and
// returns it if it is accepting. It returns ok=false once the agenda is
// exhausted.
func (r *Recogniser[S, I, W]) Next() (Item[S, I, W], bool) {
	for {
		v, ok := r.agenda.Dequeue()
		if !ok {
			return Item[S, I, W]{}, false
		}
		e := v.(entry[S, I, W])

		key := r.automaton.ExtractKey(e.cfg.Storage)
		for _, t := range r.automaton.TransitionsByKey(key) {
			if !hasPrefix(e.cfg.Word, t.Word) {
				continue
			}
			newStorage, ok := r.automaton.Apply(e.cfg.Storage, t.Instruction)
			if !ok {
				continue
			}
			newCfg := Configuration[S, W]{
				Word:    e.cfg.Word[len(t.Word):],
				Storage: newStorage,
				Weight:  e.cfg.Weight.Mul(t.Weight),
			}
			r.enqueue(newCfg, e.run.Clone(t))
		}

		if r.beam > 0 {
			r.truncateAgenda()
		}

		if r.automaton.IsAccepting(e.cfg) {
			return Item[S, I, W]{Config: e.cfg, Run: e.run}, true
		}
	}
}

func (r *Recogniser[S, I, W]) truncateAgenda() {
	if r.agenda.Size() <= r.beam {
		return
	}
	values := r.agenda.Values()
	cmp := comparator[S, I, W]()
	sort.Slice(values, func(i, j int) bool { return cmp(values[i], values[j]) < 0 })

	r.agenda.Clear()
	for _, v := range values[:r.beam] {
		r.agenda.Enqueue(v)
	}
}

// Take pulls up to n items, stopping early if the recogniser is
// exhausted first.
func (r *Recogniser[S, I, W]) Take(n int) []Item[S, I, W] {
	out := make([]Item[S, I, W], 0, n)
	for i := 0; i < n; i++ {
		item, ok := r.Next()
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out
}

func hasPrefix(word, prefix []Code) bool {
	if len(prefix) > len(word) {
		return false
	}
	for i, c := range prefix {
		if word[i] != c {
			return false
		}
	}
	return true
}
