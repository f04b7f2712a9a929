package foodweb

// WebSize is the number of species in the food web model.
const WebSize = 10

// Link is one feeding relation: a consumer takes Fraction of its diet
// from Resource. Fractions per consumer sum to 1.
type Link struct {
	Resource int
	Fraction float64
}

// webDiet is the fixed diet structure of the 10-species web. Species 0
// and 1 are basal; a nil entry means no resources. The two intermediate
// consumers (2, 3) split their diet evenly over both basal resources;
// higher consumers feed on combinations of the lower ranks.
var webDiet = [WebSize][]Link{
	0: nil,
	1: nil,
	2: {{0, 0.5}, {1, 0.5}},
	3: {{0, 0.5}, {1, 0.5}},
	4: {{2, 1.0}},
	5: {{3, 1.0}},
	6: {{2, 0.5}, {3, 0.5}},
	7: {{4, 0.5}, {5, 0.5}},
	8: {{6, 1.0}},
	9: {{7, 0.5}, {8, 0.5}},
}

// Topology is the immutable adjacency/diet structure of the web,
// together with derived trophic levels and predator lists.
type Topology struct {
	Diet      [WebSize][]Link
	Levels    [WebSize]float64
	predators [WebSize][]int // consumers feeding on each species
}

// WebTopology builds the fixed 10-species topology. Basal species sit at
// trophic level 1; each consumer's level is 1 plus the diet-weighted
// mean of its resources' levels.
func WebTopology() *Topology {
	t := &Topology{Diet: webDiet}
	for i := 0; i < WebSize; i++ {
		if len(t.Diet[i]) == 0 {
			t.Levels[i] = 1
			continue
		}
		lvl := 0.0
		for _, l := range t.Diet[i] {
			lvl += l.Fraction * t.Levels[l.Resource]
			t.predators[l.Resource] = append(t.predators[l.Resource], i)
		}
		t.Levels[i] = 1 + lvl
	}
	return t
}

// Basal reports whether species i has no resources of its own.
func (t *Topology) Basal(i int) bool { return len(t.Diet[i]) == 0 }

// Predators returns the consumers that feed on species i.
func (t *Topology) Predators(i int) []int { return t.predators[i] }
