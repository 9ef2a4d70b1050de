// seehuhn.de/go/pagetext - interpret PDF page content and extract text
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package graphics

import "errors"

// ErrStackUnderflow is returned by [Stack.Pop] when only the initial
// graphics state is left on the stack.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// Stack is the graphics state stack used by the "q" and "Q" operators.
//
// The stack is never empty.  The last element is the current graphics state,
// all other elements are saved snapshots which are not modified until they
// are restored.
type Stack struct {
	states []*State
}

// NewStack returns a stack which holds only the given state.
// If initial is nil, the default state from [NewState] is used.
func NewStack(initial *State) *Stack {
	if initial == nil {
		initial = NewState()
	}
	return &Stack{states: []*State{initial}}
}

// Current returns the current graphics state.
// The returned state may be modified until the next call to Push or Pop.
func (s *Stack) Current() *State {
	return s.states[len(s.states)-1]
}

// Push saves a copy of the current graphics state.
func (s *Stack) Push() {
	s.states = append(s.states, s.Current().Clone())
}

// Pop restores the most recently saved graphics state.
// If no saved state is left, the stack is unchanged and ErrStackUnderflow is
// returned.
func (s *Stack) Pop() error {
	if len(s.states) <= 1 {
		return ErrStackUnderflow
	}
	s.states[len(s.states)-1] = nil
	s.states = s.states[:len(s.states)-1]
	return nil
}

// Depth returns the number of states on the stack.
// At the end of a well-formed content stream, this is 1.
func (s *Stack) Depth() int {
	return len(s.states)
}
