package main

import (
	"fmt"
	"strings"
)

type item struct {
	id   int
	text string
	note bool
}

var words = strings.Fields(`only the rows intersecting the viewport are bound to pooled slots
and every slot is positioned by the prefix sum of the measured heights before it`)

func makeItems(n, noteEvery int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{id: i, text: fmt.Sprintf("Item #%d", i+1)}
		if noteEvery > 0 && i%noteEvery == noteEvery-1 {
			items[i].note = true
			items[i].text += ": " + strings.Join(words[:8+i%len(words[8:])], " ")
		}
	}
	return items
}
