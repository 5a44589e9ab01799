/*
Package search finds the shortest sequences of button presses on a machine by breadth-first search.

Three searches are provided:

  - ShortestPresses explores light patterns, where each press toggles lights;
  - ShortestCounterPresses explores counter vectors, where each press increments counters
    and any vector overshooting the target is pruned;
  - ShortestJointPresses explores pairs of light pattern and counter vector.

Each distinct state is expanded at most once, so the first time the target is dequeued,
it was reached with the fewest presses possible.
When the state space is exhausted without reaching the target, ErrUnreachable is returned:
this is never confused with a solution needing 0 presses.

The state space can grow exponentially.
WithMaxStates puts a bound on the number of visited states; when the bound is reached,
the search stops with ErrAbandoned.
*/
package search
