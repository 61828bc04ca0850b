package cart

import domcart "example.com/gomarketplace/internal/domain/cart"

// Subscribe returns a channel that receives a copy of the cart after every
// change. A slow reader only ever sees the newest snapshot. The returned func
// unsubscribes and closes the channel.
func (s *Service) Subscribe() (<-chan []domcart.Item, func()) {
	ch := make(chan []domcart.Item, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once bool
	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if once {
			return
		}
		once = true
		delete(s.subs, id)
		close(ch)
	}
	return ch, cancel
}

func (s *Service) publishLocked() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		snapshot := s.items.Clone()
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
