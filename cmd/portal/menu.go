package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	portal "github.com/timokthy/library-portal"
)

// menuState drives the interactive loop. Each state handler performs one
// user action and returns the next state, so the portal operations stay
// pure and the control flow lives in one place.
type menuState int

const (
	stateMainMenu menuState = iota
	stateBranchSearch
	stateLocator
	stateArchive
	stateQuit
)

type menu struct {
	p   *portal.Portal
	in  *bufio.Scanner
	out io.Writer
}

// runMenu runs the interactive portal until the user quits or input ends.
func runMenu(p *portal.Portal, in io.Reader, out io.Writer) error {
	m := &menu{p: p, in: bufio.NewScanner(in), out: out}

	state := stateMainMenu
	for state != stateQuit {
		switch state {
		case stateMainMenu:
			state = m.mainMenu()
		case stateBranchSearch:
			state = m.branchSearch()
		case stateLocator:
			state = m.locator()
		case stateArchive:
			state = m.archive()
		}
	}
	fmt.Fprintln(m.out, "\nThank you for using the Ontario Public Library System Portal!")
	return nil
}

// prompt prints a label and reads one line. The second return is false
// when input is exhausted, which quits the menu cleanly.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) mainMenu() menuState {
	renderHeading(m.out, "MAIN MENU")
	fmt.Fprintln(m.out, "1. Branch Information Search")
	fmt.Fprintln(m.out, "2. Library Locator")
	fmt.Fprintln(m.out, "3. Access Yearly Archives")
	fmt.Fprintln(m.out, "4. Quit")

	for {
		input, ok := m.prompt("\nPlease select an option: ")
		if !ok {
			return stateQuit
		}
		switch input {
		case "1":
			return stateBranchSearch
		case "2":
			return stateLocator
		case "3":
			return stateArchive
		case "4":
			return stateQuit
		}
		fmt.Fprintln(m.out, "Invalid input. Please enter a number between 1 and 4.")
	}
}

// nextAction asks whether to return to the main menu or repeat the current
// action.
func (m *menu) nextAction(current menuState) menuState {
	for {
		fmt.Fprintln(m.out, "\nEnter [m] to go to the Main Menu")
		input, ok := m.prompt("Enter [b] to go back: ")
		if !ok {
			return stateQuit
		}
		switch strings.ToLower(input) {
		case "m":
			return stateMainMenu
		case "b":
			return current
		}
		fmt.Fprintln(m.out, "Invalid input. Please enter again.")
	}
}

func (m *menu) branchSearch() menuState {
	renderHeading(m.out, "BRANCH INFORMATION SEARCH")

	input, ok := m.prompt(`Please enter a library branch name or code (e.g. "Toronto" or "L0353"): `)
	if !ok {
		return stateQuit
	}
	if input == "" {
		fmt.Fprintln(m.out, "Please enter a branch name or code.")
		return stateBranchSearch
	}

	records := m.p.Find(input)
	if len(records) == 0 {
		fmt.Fprintf(m.out, "\nInvalid library name or code: no match for %q.\n", input)
		return stateBranchSearch
	}
	renderBranches(m.out, records)
	return m.nextAction(stateBranchSearch)
}

func (m *menu) locator() menuState {
	renderHeading(m.out, "LIBRARY LOCATOR")

	postal, ok := m.prompt("Please enter a postal code (K1A1A1): ")
	if !ok {
		return stateQuit
	}

	needs, ok := m.promptNeeds()
	if !ok {
		return stateQuit
	}

	results, err := m.p.Nearby(postal, needs...)
	if err != nil {
		if errors.Is(err, portal.ErrUnresolvableLocation) {
			fmt.Fprintln(m.out, "Please enter a valid postal code.")
			return stateLocator
		}
		fmt.Fprintf(m.out, "Locator failed: %v\n", err)
		return stateMainMenu
	}
	if len(results) == 0 {
		fmt.Fprintln(m.out, "\nSorry! Could not find any libraries nearby.")
		return m.nextAction(stateLocator)
	}

	fmt.Fprintln(m.out, "\nHere is a list of libraries we found for you:")
	renderRanked(m.out, results, 5)

	return m.pickBranch(results)
}

// promptNeeds lists the recognized needs and reads a selection: blank for
// no preference, otherwise comma-separated option numbers.
func (m *menu) promptNeeds() ([]portal.Need, bool) {
	all := portal.Needs()
	fmt.Fprintln(m.out, "\nWhat are you looking for today? (blank for no preference)")
	for i, n := range all {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, needLabel(n))
	}

	for {
		input, ok := m.prompt("\nSelect options (e.g. 1,3): ")
		if !ok {
			return nil, false
		}
		if input == "" {
			return nil, true
		}

		var needs []portal.Need
		valid := true
		for _, part := range strings.Split(input, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || idx < 1 || idx > len(all) {
				valid = false
				break
			}
			needs = append(needs, all[idx-1])
		}
		if valid {
			return needs, true
		}
		fmt.Fprintf(m.out, "Invalid input. Please enter numbers between 1 and %d.\n", len(all))
	}
}

// pickBranch lets the user view full information for one of the listed
// branches.
func (m *menu) pickBranch(results []portal.RankedBranch) menuState {
	shown := len(results)
	if shown > 5 {
		shown = 5
	}

	for {
		input, ok := m.prompt("\nSelect a number to view its branch information: ")
		if !ok {
			return stateQuit
		}
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > shown {
			fmt.Fprintf(m.out, "Invalid input. Please enter a number between 1 and %d.\n", shown)
			continue
		}
		records := m.p.Find(results[idx-1].Branch.Code)
		renderBranches(m.out, records)
		return m.nextAction(stateLocator)
	}
}

func (m *menu) archive() menuState {
	renderHeading(m.out, "ACCESS LIBRARY ARCHIVES")

	input, ok := m.prompt("Please enter a year between 2017 and 2019: ")
	if !ok {
		return stateQuit
	}
	year, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid archive year. Please enter again.")
		return stateArchive
	}

	summary, err := m.p.Summarize(year)
	if err != nil {
		if errors.Is(err, portal.ErrInvalidYear) {
			fmt.Fprintln(m.out, "Invalid archive year. Please enter again.")
			return stateArchive
		}
		fmt.Fprintf(m.out, "Archive lookup failed: %v\n", err)
		return stateMainMenu
	}
	renderSummary(m.out, summary)
	return m.nextAction(stateArchive)
}

func needLabel(n portal.Need) string {
	switch n {
	case portal.NeedPrintResources:
		return "Print resources available"
	case portal.NeedElectronicResources:
		return "E-book and e-audio resources available"
	case portal.NeedEnglishResources:
		return "English resources available"
	case portal.NeedFrenchResources:
		return "French resources available"
	case portal.NeedWebsite:
		return "Has a website"
	default:
		return string(n)
	}
}
