package voronoi

// EventQueue orders pending events by sweep position: y, then x, then circle events
// ahead of site events at the same point, then insertion order.
type EventQueue struct {
	tree  rbTree[*queued]
	nodes map[EventID]*rbNode[*queued]
	last  EventID
}

type queued struct {
	event Event
	seq   uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{nodes: make(map[EventID]*rbNode[*queued])}
}

func (q *EventQueue) Len() int { return q.tree.len() }

// Insert assigns the event a fresh handle and queues it.
func (q *EventQueue) Insert(ev Event) EventID {
	q.last++
	ev.setID(q.last)
	item := &queued{event: ev, seq: uint64(q.last)}

	var predecessor *rbNode[*queued]
	node := q.tree.root
	for node != nil {
		if item.before(node.value) {
			if node.left == nil {
				predecessor = node.prev
				break
			}
			node = node.left
		} else {
			if node.right == nil {
				predecessor = node
				break
			}
			node = node.right
		}
	}

	q.nodes[q.last] = q.tree.insertAfter(predecessor, item)
	return q.last
}

func (q *EventQueue) PeekMin() (Event, bool) {
	if q.tree.head == nil {
		return nil, false
	}
	return q.tree.head.value.event, true
}

func (q *EventQueue) PopMin() (Event, bool) {
	head := q.tree.head
	if head == nil {
		return nil, false
	}
	q.tree.remove(head)
	delete(q.nodes, head.value.event.ID())
	return head.value.event, true
}

// Remove cancels a queued event. Unknown or already consumed handles report false.
func (q *EventQueue) Remove(id EventID) bool {
	node, ok := q.nodes[id]
	if !ok {
		return false
	}
	q.tree.remove(node)
	delete(q.nodes, id)
	return true
}

// Lookup returns a still queued event.
func (q *EventQueue) Lookup(id EventID) (Event, bool) {
	node, ok := q.nodes[id]
	if !ok {
		return nil, false
	}
	return node.value.event, true
}

func (a *queued) before(b *queued) bool {
	pa, pb := a.event.Point(), b.event.Point()
	if pa.Y != pb.Y {
		return pa.Y < pb.Y
	}
	if pa.X != pb.X {
		return pa.X < pb.X
	}
	if ka, kb := a.event.Kind(), b.event.Kind(); ka != kb {
		return ka == KindCircle
	}
	return a.seq < b.seq
}
