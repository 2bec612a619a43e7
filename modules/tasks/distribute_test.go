package tasks

import (
	"testing"

	domain "github.com/example/agent-tasks/domain/task"
	"github.com/example/agent-tasks/modules/accounts"
)

func makeTasks(n int) []domain.Task {
	tasks := make([]domain.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, domain.Task{TaskID: RowTaskID("0001", i+1)})
	}
	return tasks
}

func makeAgents(n int) []accounts.AgentInfo {
	agents := make([]accounts.AgentInfo, 0, n)
	for i := 0; i < n; i++ {
		agents = append(agents, accounts.AgentInfo{
			UserID:   string(rune('A' + i)),
			Username: "agent-" + string(rune('a'+i)),
		})
	}
	return agents
}

func countByAgent(pairs []Pair) map[string]int {
	counts := make(map[string]int)
	for _, p := range pairs {
		counts[p.Agent.UserID]++
	}
	return counts
}

func TestRoundRobin(t *testing.T) {
	t.Run("rotates through agents in order", func(t *testing.T) {
		tasks := makeTasks(7)
		agents := makeAgents(3)

		pairs := RoundRobin(tasks, agents)
		if len(pairs) != 7 {
			t.Fatalf("expected 7 pairs, got %d", len(pairs))
		}

		// Task i goes to agent i mod 3.
		for i, p := range pairs {
			want := agents[i%3].UserID
			if p.Agent.UserID != want {
				t.Errorf("task %d assigned to %s, want %s", i, p.Agent.UserID, want)
			}
			if p.Task.TaskID != tasks[i].TaskID {
				t.Errorf("pair %d carries task %s, want %s", i, p.Task.TaskID, tasks[i].TaskID)
			}
		}

		counts := countByAgent(pairs)
		if counts["A"] != 3 || counts["B"] != 2 || counts["C"] != 2 {
			t.Errorf("expected counts A=3 B=2 C=2, got %v", counts)
		}
	})

	t.Run("counts differ by at most one", func(t *testing.T) {
		for _, n := range []int{1, 4, 10, 99} {
			counts := countByAgent(RoundRobin(makeTasks(n), makeAgents(4)))
			min, max := n, 0
			for _, a := range makeAgents(4) {
				c := counts[a.UserID]
				if c < min {
					min = c
				}
				if c > max {
					max = c
				}
			}
			if max-min > 1 {
				t.Errorf("n=%d: counts spread %d, want <= 1 (%v)", n, max-min, counts)
			}
		}
	})

	t.Run("fewer tasks than agents", func(t *testing.T) {
		pairs := RoundRobin(makeTasks(2), makeAgents(5))
		if len(pairs) != 2 {
			t.Fatalf("expected 2 pairs, got %d", len(pairs))
		}
		if pairs[0].Agent.UserID != "A" || pairs[1].Agent.UserID != "B" {
			t.Errorf("expected first two agents, got %s, %s",
				pairs[0].Agent.UserID, pairs[1].Agent.UserID)
		}
	})

	t.Run("no tasks yields no pairs", func(t *testing.T) {
		if pairs := RoundRobin(nil, makeAgents(3)); len(pairs) != 0 {
			t.Errorf("expected no pairs, got %d", len(pairs))
		}
	})
}

func TestEvenSplit(t *testing.T) {
	t.Run("remainder goes to earlier agents", func(t *testing.T) {
		tasks := makeTasks(12)
		agents := makeAgents(5)

		pairs := EvenSplit(tasks, agents)
		if len(pairs) != 12 {
			t.Fatalf("expected 12 pairs, got %d", len(pairs))
		}

		counts := countByAgent(pairs)
		want := map[string]int{"A": 3, "B": 3, "C": 2, "D": 2, "E": 2}
		for id, n := range want {
			if counts[id] != n {
				t.Errorf("agent %s got %d tasks, want %d", id, counts[id], n)
			}
		}
	})

	t.Run("agents receive contiguous runs in task order", func(t *testing.T) {
		pairs := EvenSplit(makeTasks(12), makeAgents(5))

		// First agent takes the first three tasks, second the next three.
		for i := 0; i < 3; i++ {
			if pairs[i].Agent.UserID != "A" {
				t.Errorf("pair %d assigned to %s, want A", i, pairs[i].Agent.UserID)
			}
		}
		for i := 3; i < 6; i++ {
			if pairs[i].Agent.UserID != "B" {
				t.Errorf("pair %d assigned to %s, want B", i, pairs[i].Agent.UserID)
			}
		}
		for i, p := range pairs {
			if p.Task.TaskID != RowTaskID("0001", i+1) {
				t.Errorf("pair %d carries task %s, want %s", i, p.Task.TaskID, RowTaskID("0001", i+1))
			}
		}
	})

	t.Run("even division leaves no remainder", func(t *testing.T) {
		counts := countByAgent(EvenSplit(makeTasks(10), makeAgents(5)))
		for id, n := range counts {
			if n != 2 {
				t.Errorf("agent %s got %d tasks, want 2", id, n)
			}
		}
	})

	t.Run("fewer tasks than agents", func(t *testing.T) {
		pairs := EvenSplit(makeTasks(3), makeAgents(5))
		if len(pairs) != 3 {
			t.Fatalf("expected 3 pairs, got %d", len(pairs))
		}
		counts := countByAgent(pairs)
		if counts["A"] != 1 || counts["B"] != 1 || counts["C"] != 1 {
			t.Errorf("expected one task each for A, B, C, got %v", counts)
		}
		if counts["D"] != 0 || counts["E"] != 0 {
			t.Errorf("expected no tasks for D, E, got %v", counts)
		}
	})

	t.Run("no agents yields no pairs", func(t *testing.T) {
		if pairs := EvenSplit(makeTasks(3), nil); len(pairs) != 0 {
			t.Errorf("expected no pairs, got %d", len(pairs))
		}
	})
}
