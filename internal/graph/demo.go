package graph

import "fmt"

type demoOp int

const (
	opCommit demoOp = iota
	opBranch
	opMerge
)

// demoStep acts on Branch: commit Arg on it, fork Arg from it, or merge Arg
// into it.
type demoStep struct {
	Op     demoOp
	Branch string
	Arg    string
}

func commitOn(branch, msg string) demoStep   { return demoStep{opCommit, branch, msg} }
func forkFrom(branch, name string) demoStep  { return demoStep{opBranch, branch, name} }
func mergeInto(branch, from string) demoStep { return demoStep{opMerge, branch, from} }

// bttfTimeline is the "Back to the Future" trilogy as branches.
var bttfTimeline = []demoStep{
	commitOn("main", "1885 Lejano Oeste"),
	commitOn("main", "Doc viaja por error (Checkout)"),
	commitOn("main", "Marty llega a 1985"),
	forkFrom("main", "clara-viva"),
	commitOn("clara-viva", "Doc conoce a Clara en 1885"),
	commitOn("main", "Clara muere en 1885"),
	commitOn("clara-viva", "Marty se mete en problemas"),
	commitOn("clara-viva", "Roban locomotora"),
	commitOn("clara-viva", "Marty viaja al futuro (1985)"),
	mergeInto("main", "clara-viva"),
	commitOn("clara-viva", "Doc y Clara forman familia"),
	commitOn("main", "El Doc escribe una nota para Marty"),
	commitOn("main", "1955"),
	commitOn("main", "Marty llega desde 1985"),
	commitOn("main", "Biff llega desde 1985 con el calendario"),
	forkFrom("main", "biff-paradise"),
	commitOn("biff-paradise", "Marty llega nuevamente a 1955"),
	commitOn("biff-paradise", "Jennifer se queda en esta distopia"),
	forkFrom("biff-paradise", "marty-calendario"),
	commitOn("biff-paradise", "Biff se entrega el calendario"),
	commitOn("marty-calendario", "Marty le quita el calendario a Biff (Joven)"),
	forkFrom("main", "marty-sin-papas"),
	commitOn("marty-sin-papas", "Marty interfiere en la cita de sus padres"),
	commitOn("marty-sin-papas", "Marty empieza a desaparecer"),
	commitOn("marty-sin-papas", "Marty logra que sus padres se enamoren"),
	commitOn("main", "George McFly conoce a Lorraine"),
	commitOn("main", "El Baile del Encanto Bajo el Mar"),
	mergeInto("main", "marty-sin-papas"),
	mergeInto("main", "marty-calendario"),
	forkFrom("main", "familia-feliz"),
	commitOn("main", "12 Noviembre 22:04 hs Rayo en la torre del reloj"),
	commitOn("marty-calendario", "El Doc desaparece (viaja al pasado por accidente)"),
	commitOn("marty-calendario", "Marty recibe una carta de 1885"),
	commitOn("biff-paradise", "El Doc es encerrado en el manicomio"),
	commitOn("main", "El Doc inventa la Máquina del tiempo"),
	commitOn("biff-paradise", "George McFly muere"),
	commitOn("biff-paradise", "Marty enfrenta a Biff"),
	commitOn("main", "1985 normal y aburrido"),
	mergeInto("familia-feliz", "biff-paradise"),
	commitOn("familia-feliz", "1985 Familia McFly Exitosa"),
	commitOn("main", "Marty y Jennifer se casan"),
	commitOn("main", "2015"),
	commitOn("familia-feliz", "No despiden a Marty del trabajo"),
	commitOn("main", "Biff descubre la verdad"),
}

// LoadDemo redraws the graph as the demo timeline and leaves HEAD on main.
func (g *Graph) LoadDemo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.initLocked(); err != nil {
		return err
	}
	for i, step := range bttfTimeline {
		if err := g.setHEAD(step.Branch); err != nil {
			return err
		}
		var err error
		switch step.Op {
		case opCommit:
			_, err = g.commitLocked(step.Arg, nil)
		case opBranch:
			err = g.branchLocked(step.Arg)
		case opMerge:
			err = g.mergeLocked(step.Arg)
		}
		if err != nil {
			return fmt.Errorf("demo step %d: %w", i, err)
		}
	}
	return g.setHEAD(mainBranch)
}
