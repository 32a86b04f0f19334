package app

import (
	"strings"

	"github.com/sadopc/daybook/internal/store"
)

func (c *Controller) AddProject(name, description string) (store.Project, Notice) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Project{}, warning("Project name is required")
	}
	p := store.Project{ID: c.nextID(), Name: name, Description: description}
	c.state.Projects = append(c.state.Projects, p)
	c.save(store.KeyProjects)
	return p, success("Project added")
}

func (c *Controller) DeleteProject(id int64) bool {
	var ok bool
	c.state.Projects, ok = removeByID(c.state.Projects, id, func(p store.Project) int64 { return p.ID })
	if ok {
		c.save(store.KeyProjects)
	}
	return ok
}

func (c *Controller) AddClient(cl store.Client) (store.Client, Notice) {
	cl.Name = strings.TrimSpace(cl.Name)
	if cl.Name == "" {
		return store.Client{}, warning("Client name is required")
	}
	cl.ID = c.nextID()
	c.state.Clients = append(c.state.Clients, cl)
	c.save(store.KeyClients)
	return cl, success("Client added")
}

func (c *Controller) DeleteClient(id int64) bool {
	var ok bool
	c.state.Clients, ok = removeByID(c.state.Clients, id, func(cl store.Client) int64 { return cl.ID })
	if ok {
		c.save(store.KeyClients)
	}
	return ok
}

func (c *Controller) AddTask(t store.Task) (store.Task, Notice) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return store.Task{}, warning("Task title is required")
	}
	t.ID = c.nextID()
	t.Completed = false
	c.state.Tasks = append(c.state.Tasks, t)
	c.save(store.KeyTasks)
	return t, success("Task added")
}

// ToggleTask flips the completed flag of the task with id.
func (c *Controller) ToggleTask(id int64) bool {
	for i := range c.state.Tasks {
		if c.state.Tasks[i].ID == id {
			c.state.Tasks[i].Completed = !c.state.Tasks[i].Completed
			c.save(store.KeyTasks)
			return true
		}
	}
	return false
}

func (c *Controller) DeleteTask(id int64) bool {
	var ok bool
	c.state.Tasks, ok = removeByID(c.state.Tasks, id, func(t store.Task) int64 { return t.ID })
	if ok {
		c.save(store.KeyTasks)
	}
	return ok
}

func (c *Controller) AddNote(title, content string) (store.Note, Notice) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Note{}, warning("Note title is required")
	}
	n := store.Note{ID: c.nextID(), Title: title, Content: content, CreatedAt: c.now().UTC()}
	c.state.Notes = append(c.state.Notes, n)
	c.save(store.KeyNotes)
	return n, success("Note added")
}

func (c *Controller) DeleteNote(id int64) bool {
	var ok bool
	c.state.Notes, ok = removeByID(c.state.Notes, id, func(n store.Note) int64 { return n.ID })
	if ok {
		c.save(store.KeyNotes)
	}
	return ok
}

func removeByID[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
