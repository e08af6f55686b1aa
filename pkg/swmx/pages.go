package swmx

import (
	"fmt"

	"github.com/justyntemme/swmx/pkg/framework/param"
)

// Page is a named group of parameters as presented to a user.
type Page struct {
	Name   string
	Prefix string // prepended to parameter names in compact displays
	Params []*param.Parameter
}

var groupNames = [...]string{"Group 1", "Group 2", "Group 3", "Group 4"}

// Pages returns the Global page followed by one page per group.
func (a *Algorithm) Pages() []Page {
	pages := make([]Page, 0, 1+a.numGroups)
	pages = append(pages, Page{
		Name:   "Global",
		Params: []*param.Parameter{a.bypass, a.globalFade},
	})
	for g, gp := range a.groups {
		pages = append(pages, Page{
			Name:   groupNames[g],
			Prefix: UIPrefix(g),
			Params: gp.params(a.numDests),
		})
	}
	return pages
}

// UIPrefix returns the short display prefix of group g, e.g. "1:".
func UIPrefix(g int) string {
	return fmt.Sprintf("%d:", g+1)
}

// DisplayName returns the parameter name with its group prefix when it
// belongs to a group.
func (a *Algorithm) DisplayName(p *param.Parameter) string {
	if p.ID < groupStride {
		return p.Name
	}
	g := int(p.ID/groupStride) - 1
	return UIPrefix(g) + p.Name
}
