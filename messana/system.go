package messana

// System is controller-wide state shared by every zone.
// The heat/cool mode lives here, not on any individual zone.
type System struct {
	api *Client
}

// NewSystem wraps the shared controller state
func NewSystem(api *Client) *System {
	return &System{api: api}
}

// Mode fetches the controller's current heat/cool mode (0 heat, 1 cool)
func (s *System) Mode() (int, error) {
	var v apiValue
	if err := s.api.FetchJSON("hc/mode/0", &v); err != nil {
		return 0, err
	}
	return int(v.Value), nil
}
