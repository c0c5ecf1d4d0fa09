package bus

import "testing"

type point struct{ X, Y int }

var (
	topicPoint = NewTopic[point]("point")
	topicText  = NewTopic[string]("text")
)

func TestPublish_DeliversInOrder(t *testing.T) {
	b := New()
	var got []string

	Subscribe(b, topicText, func(s string) { got = append(got, "first:"+s) })
	Subscribe(b, topicText, func(s string) { got = append(got, "second:"+s) })

	Publish(b, topicText, "a")

	if len(got) != 2 || got[0] != "first:a" || got[1] != "second:a" {
		t.Errorf("got %v", got)
	}
}

func TestPublish_TopicsAreIsolated(t *testing.T) {
	b := New()
	var points []point
	texts := 0

	Subscribe(b, topicPoint, func(p point) { points = append(points, p) })
	Subscribe(b, topicText, func(string) { texts++ })

	Publish(b, topicPoint, point{1, 2})

	if len(points) != 1 || points[0] != (point{1, 2}) {
		t.Errorf("points = %v", points)
	}
	if texts != 0 {
		t.Errorf("text handler called %d times", texts)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	sub := Subscribe(b, topicText, func(string) { calls++ })

	Publish(b, topicText, "x")
	sub.Unsubscribe()
	sub.Unsubscribe()
	Publish(b, topicText, "y")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n := b.Count(topicText.Name()); n != 0 {
		t.Errorf("Count = %d after unsubscribe", n)
	}

	var zero Subscription
	zero.Unsubscribe()
}

func TestUnsubscribe_DuringPublish(t *testing.T) {
	b := New()
	var order []string
	var second Subscription

	Subscribe(b, topicText, func(string) {
		order = append(order, "first")
		second.Unsubscribe()
	})
	second = Subscribe(b, topicText, func(string) { order = append(order, "second") })

	Publish(b, topicText, "x")
	Publish(b, topicText, "y")

	// the first publish had already copied the handler list
	want := []string{"first", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPublish_NestedDispatch(t *testing.T) {
	b := New()
	var got []string

	Subscribe(b, topicPoint, func(p point) {
		got = append(got, "point")
		Publish(b, topicText, "from point")
	})
	Subscribe(b, topicText, func(s string) { got = append(got, s) })

	Publish(b, topicPoint, point{})

	if len(got) != 2 || got[1] != "from point" {
		t.Errorf("got %v", got)
	}
}
