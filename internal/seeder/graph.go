package seeder

import (
	"fmt"

	"github.com/Rana718/ghseed/internal/models"
)

// DependencyGraph orders tables so that referenced tables come first.
type DependencyGraph struct {
	names []string
	deps  map[string][]string
	order []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps: make(map[string][]string),
	}
}

// AddTable registers table and the tables its foreign keys reference.
func (g *DependencyGraph) AddTable(table string, dependsOn ...string) {
	if _, exists := g.deps[table]; !exists {
		g.names = append(g.names, table)
	}
	g.deps[table] = dependsOn
}

func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(table string) error {
		if temp[table] {
			return fmt.Errorf("circular dependency detected involving table: %s", table)
		}
		if visited[table] {
			return nil
		}

		temp[table] = true
		for _, dep := range g.deps[table] {
			if dep == table {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[table] = false
		visited[table] = true
		order = append(order, table)
		return nil
	}

	for _, table := range g.names {
		if err := visit(table); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

// PurgeOrder is the insertion order reversed, so dependents are emptied
// before the rows they reference.
func (g *DependencyGraph) PurgeOrder() ([]string, error) {
	order, err := g.BuildInsertionOrder()
	if err != nil {
		return nil, err
	}
	purge := make([]string, len(order))
	for i, table := range order {
		purge[len(order)-1-i] = table
	}
	return purge, nil
}

// SchemaGraph is the dependency graph of the seeded tables.
func SchemaGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for _, table := range models.Tables {
		g.AddTable(table, models.TableDependencies[table]...)
	}
	return g
}
