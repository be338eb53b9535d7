package solver

import "fmt"

var brainstormSteps = []string{
	"Name the goal in one joyful sentence.",
	"List the facts and doodle a tiny diagram.",
	"Break the challenge into two bite-sized steps.",
	"Pick the easiest step and start there—momentum is magic!",
}

// Brainstorm is the terminal fallback. It always answers, quoting the raw problem.
func Brainstorm(problem string) Solution {
	answer := fmt.Sprintf("I don't have a direct solver for: '%s'. But we can still win together!", problem)
	return newSolution(KindBrainstorm, answer, brainstormSteps)
}
