package tasks

import (
	domain "github.com/example/agent-tasks/domain/task"
	"github.com/example/agent-tasks/modules/accounts"
)

// Pair couples one task with the agent it is distributed to. The two
// strategies below are pure functions over (ordered task list, ordered
// agent list); applying the resulting pairs to the store is the
// repository's job.
type Pair struct {
	Task  domain.Task
	Agent accounts.AgentInfo
}

// RoundRobin distributes tasks across agents with a rotating pointer:
// the first task goes to the first agent, the next to the second, wrapping
// around until every task is placed. Per-agent counts differ by at most one
// regardless of arrival order.
func RoundRobin(tasks []domain.Task, agents []accounts.AgentInfo) []Pair {
	if len(tasks) == 0 || len(agents) == 0 {
		return nil
	}

	pairs := make([]Pair, 0, len(tasks))
	pointer := 0
	for _, t := range tasks {
		pairs = append(pairs, Pair{Task: t, Agent: agents[pointer]})
		pointer = (pointer + 1) % len(agents)
	}
	return pairs
}

// EvenSplit hands each agent a contiguous run of len(tasks)/len(agents)
// tasks in task order, with earlier-indexed agents absorbing one extra task
// each until the remainder is exhausted. The split is maximally even with a
// deterministic tie-break by agent position.
func EvenSplit(tasks []domain.Task, agents []accounts.AgentInfo) []Pair {
	if len(tasks) == 0 || len(agents) == 0 {
		return nil
	}

	base := len(tasks) / len(agents)
	remainder := len(tasks) % len(agents)

	pairs := make([]Pair, 0, len(tasks))
	next := 0
	for i, agent := range agents {
		n := base
		if i < remainder {
			n++
		}
		for j := 0; j < n && next < len(tasks); j++ {
			pairs = append(pairs, Pair{Task: tasks[next], Agent: agent})
			next++
		}
	}
	return pairs
}
