package mregexp

import (
	"sync"
)

// Pool for machine scratch space to reduce GC pressure
var vmPool = sync.Pool{
	New: func() interface{} {
		return &VM{}
	},
}

// frame is one pending step of a continuation. Frames are never modified
// once pushed, so choice points can keep referring to them.
type frame struct {
	kind  frameKind
	node  int
	pos   int // where the repetition or group began
	count int // repetitions completed before this one
	mark  int // choice stack height to cut back to
	up    int // enclosing frame, -1 for none
}

type frameKind uint8

const (
	frameResume  frameKind = iota // continue with node
	frameRepeat                   // a repetition of the Quantifier node ended
	frameCapture                  // the body of the Capture node ended
)

// choice is a point to resume from when the current path fails.
type choice struct {
	kind  choiceKind
	node  int
	pos   int
	cont  int
	count int
	trail int
}

type choiceKind uint8

const (
	choiceBranch   choiceKind = iota // try the right branch of an alternation
	choiceStopLoop                   // the next repetition failed; leave the loop
)

type undo struct {
	slot, old int
}

// VM executes a Prog against an Input. Backtracking is driven by an explicit
// choice stack, so the Go stack does not grow with the input or the pattern.
//
// Only alternation leaves choice points behind. The body of a Quantifier or
// a Capture is committed as soon as it matches: its choice points are cut and
// input consumed by a repetition is never given back.
type VM struct {
	prog  *Prog
	input Input

	caps    []int
	frames  []frame
	choices []choice
	trail   []undo
}

func NewVM(prog *Prog, input Input) *VM {
	vm := vmPool.Get().(*VM)
	vm.prog, vm.input = prog, input
	return vm
}

// Free returns the VM to the pool. The VM must not be used afterwards.
func (vm *VM) Free() {
	vm.prog, vm.input = nil, nil
	vm.caps = vm.caps[:0]
	vm.frames = vm.frames[:0]
	vm.choices = vm.choices[:0]
	vm.trail = vm.trail[:0]
	vmPool.Put(vm)
}

// Run attempts a match starting exactly at pos.
// It returns the end of the match and the capture registers, two per group,
// -1 for groups that did not participate. The registers are overwritten by
// the next call to Run.
func (vm *VM) Run(pos int) (int, []int, bool) {
	needed := 2 * vm.prog.NumCap
	if cap(vm.caps) < needed {
		vm.caps = make([]int, needed)
	}
	vm.caps = vm.caps[:needed]
	for i := range vm.caps {
		vm.caps[i] = -1
	}
	vm.frames = vm.frames[:0]
	vm.choices = vm.choices[:0]
	vm.trail = vm.trail[:0]

	end, ok := vm.match(vm.prog.Start, pos)
	if !ok {
		return -1, nil, false
	}
	return end, vm.caps, true
}

func (vm *VM) push(f frame) int {
	vm.frames = append(vm.frames, f)
	return len(vm.frames) - 1
}

func (vm *VM) setCap(slot, pos int) {
	vm.trail = append(vm.trail, undo{slot: slot, old: vm.caps[slot]})
	vm.caps[slot] = pos
}

func (vm *VM) match(node, pos int) (int, bool) {
	nodes := vm.prog.Nodes
	cont := -1

	for {
		if node == noNode {
			// End of a sequence: resume the innermost continuation.
			if cont == -1 {
				return pos, true
			}
			f := vm.frames[cont]
			cont = f.up

			switch f.kind {
			case frameResume:
				node = f.node

			case frameRepeat:
				vm.choices = vm.choices[:f.mark]
				q := &nodes[f.node]
				count := f.count + 1
				// An empty repetition would repeat forever; it satisfies
				// whatever minimum is left.
				if pos == f.pos || (q.Max >= 0 && count >= q.Max) {
					node = q.Next
					continue
				}
				node, cont = vm.repeat(f.node, pos, count, cont)

			case frameCapture:
				vm.choices = vm.choices[:f.mark]
				c := &nodes[f.node]
				vm.setCap(2*c.Index, f.pos)
				vm.setCap(2*c.Index+1, pos)
				node = c.Next
			}
			continue
		}

		n := &nodes[node]
		matched := true

		switch n.Type {
		case NodeStart:
			node = n.Next

		case NodeLiteral:
			r, w := vm.input.Step(pos)
			if w == 0 || r != n.Val {
				matched = false
				break
			}
			pos += w
			node = n.Next

		case NodeAny:
			_, w := vm.input.Step(pos)
			if w == 0 {
				matched = false
				break
			}
			pos += w
			node = n.Next

		case NodeClass:
			r, w := vm.input.Step(pos)
			if w == 0 || !matchClass(nodes, n, r) {
				matched = false
				break
			}
			pos += w
			node = n.Next

		case NodeAnchorBegin:
			matched = pos == 0
			node = n.Next

		case NodeAnchorEnd:
			matched = pos == vm.input.Len()
			node = n.Next

		case NodeQuantifier:
			if n.Max == 0 {
				node = n.Next
				break
			}
			node, cont = vm.repeat(node, pos, 0, cont)

		case NodeCapture:
			cont = vm.push(frame{kind: frameCapture, node: node, pos: pos, mark: len(vm.choices), up: cont})
			node = n.Child

		case NodeAlternation:
			cont = vm.push(frame{kind: frameResume, node: n.Next, up: cont})
			vm.choices = append(vm.choices, choice{
				kind:  choiceBranch,
				node:  n.Right,
				pos:   pos,
				cont:  cont,
				trail: len(vm.trail),
			})
			node = n.Child

		default:
			matched = false
		}

		if matched {
			continue
		}

		// Backtrack to the most recent choice point.
		for {
			if len(vm.choices) == 0 {
				return -1, false
			}
			c := vm.choices[len(vm.choices)-1]
			vm.choices = vm.choices[:len(vm.choices)-1]
			for len(vm.trail) > c.trail {
				u := vm.trail[len(vm.trail)-1]
				vm.caps[u.slot] = u.old
				vm.trail = vm.trail[:len(vm.trail)-1]
			}
			pos, cont = c.pos, c.cont

			if c.kind == choiceBranch {
				node = c.node
				break
			}
			// choiceStopLoop: the loop ends after count repetitions.
			q := &nodes[c.node]
			if c.count >= q.Min {
				node = q.Next
				break
			}
		}
	}
}

// repeat starts repetition count+1 of the Quantifier q at pos. If the
// repetition fails, a choice point resumes after the loop.
func (vm *VM) repeat(q, pos, count, cont int) (int, int) {
	mark := len(vm.choices)
	vm.choices = append(vm.choices, choice{
		kind:  choiceStopLoop,
		node:  q,
		pos:   pos,
		cont:  cont,
		count: count,
		trail: len(vm.trail),
	})
	f := vm.push(frame{kind: frameRepeat, node: q, pos: pos, count: count, mark: mark, up: cont})
	return vm.prog.Nodes[q].Child, f
}

// matchClass reports whether r falls in one of the ranges owned by class,
// flipped when the class is negated.
func matchClass(nodes []Node, class *Node, r rune) bool {
	matched := false
	for i := class.Child; i != noNode; i = nodes[i].Next {
		if r >= nodes[i].Val && r <= nodes[i].Hi {
			matched = true
			break
		}
	}
	if class.Negated {
		return !matched
	}
	return matched
}
