package announcement

import (
	"testing"
	"time"
)

func fresh(title string, published time.Time) *Announcement {
	return New(Data{Title: title, URL: "http://bit.lk/" + title, PublishedAt: published, RetrievedAt: time.Now()})
}

func stored(id, title string, published time.Time) *Announcement {
	return New(Data{ID: id, Title: title, URL: "http://bit.lk/" + title, PublishedAt: published})
}

func TestCollectionAddAndMembership(t *testing.T) {
	c := NewCollection()
	a := fresh("Exam Results", date(2020, time.May, 11))
	c.Add(a)

	if c.Size() != 1 {
		t.Fatalf("Expected size 1, got %d", c.Size())
	}
	if !c.Contains(a.CheckString) {
		t.Errorf("Expected collection to contain key %q", a.CheckString)
	}
	if c.Contains("missing") {
		t.Error("Expected membership test to fail for absent key")
	}
	if c.Get(a.CheckString) != a {
		t.Error("Get should return the inserted announcement")
	}
}

func TestCollectionDuplicateKeyLastWriteWins(t *testing.T) {
	c := NewCollection()
	first := fresh("Exam Results", date(2020, time.May, 11))
	second := fresh("Exam Results", date(2020, time.May, 11))
	second.URL = "http://bit.lk/exam-results-2"

	c.Add(first)
	c.Add(second)

	if c.Size() != 1 {
		t.Fatalf("Expected duplicate key to overwrite, size is %d", c.Size())
	}
	if c.Get(first.CheckString) != second {
		t.Error("Expected the later insert to win")
	}
}

func TestCollectionIsFromDB(t *testing.T) {
	empty := NewCollection()
	if !empty.IsFromDB() {
		t.Error("Empty collection should count as stored by convention")
	}

	storedOnly := NewCollection().AddAll([]*Announcement{
		stored("1", "a", date(2020, time.May, 11)),
		stored("2", "b", date(2020, time.May, 12)),
	})
	if !storedOnly.IsFromDB() {
		t.Error("All-stored collection should be from db")
	}

	mixed := NewCollection().AddAll([]*Announcement{
		stored("1", "a", date(2020, time.May, 11)),
		fresh("b", date(2020, time.May, 12)),
	})
	if mixed.IsFromDB() {
		t.Error("Collection with a fresh member should not be from db")
	}
}

func TestCollectionIsUniform(t *testing.T) {
	uniform := NewCollection().AddAll([]*Announcement{
		fresh("a", date(2020, time.May, 11)),
		fresh("b", date(2020, time.May, 12)),
	})
	if !uniform.IsUniform() {
		t.Error("All-fresh collection should be uniform")
	}

	mixed := NewCollection().AddAll([]*Announcement{
		stored("1", "a", date(2020, time.May, 11)),
		fresh("b", date(2020, time.May, 12)),
	})
	if mixed.IsUniform() {
		t.Error("Mixed collection should not be uniform")
	}
}

func TestCollectionSortByPublishedDesc(t *testing.T) {
	oldest := fresh("oldest", date(2020, time.May, 10))
	middle := fresh("middle", date(2020, time.May, 11))
	newest := fresh("newest", date(2020, time.May, 12))

	c := NewCollection().AddAll([]*Announcement{middle, newest, oldest})
	c.SortByPublishedDesc()

	list := c.List()
	if list[0] != newest || list[1] != middle || list[2] != oldest {
		t.Errorf("Expected newest-first order, got %v", c.Keys())
	}
}

func TestSameDayGroupsFreshCollection(t *testing.T) {
	a := fresh("first", date(2020, time.May, 11))
	b := fresh("second", date(2020, time.May, 11))
	c := fresh("third", date(2020, time.May, 12))

	groups := NewCollection().AddAll([]*Announcement{a, b, c}).SameDayGroups()

	if len(groups) != 1 {
		t.Fatalf("Expected 1 colliding group, got %d", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("Expected 2 members in the group, got %d", len(groups[0]))
	}
	if groups[0][0] != a || groups[0][1] != b {
		t.Error("Expected the two 11-May announcements in the group")
	}
}

func TestSameDayGroupsStoredCollection(t *testing.T) {
	c := NewCollection().AddAll([]*Announcement{
		stored("1", "first", date(2020, time.May, 11)),
		stored("2", "second", date(2020, time.May, 11)),
		stored("3", "third", date(2020, time.May, 12)),
	})

	if groups := c.SameDayGroups(); groups != nil {
		t.Errorf("Stored collection should produce no groups, got %d", len(groups))
	}
}

func TestCollectionString(t *testing.T) {
	if NewCollection().String() != "Collection is empty" {
		t.Error("Empty collection should say so")
	}
}
