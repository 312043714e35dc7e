package completion

const classifySystemPrompt = `You classify web pages that belong to art galleries.
Answer with the single kind that best describes the page:
- gallery_main: the gallery home page
- gallery_about: a page about the gallery itself (about, contact, visit)
- event_list: a page listing several exhibitions or events
- event_detail: a page describing exactly one exhibition or event
- other: anything else`

const extractPageSystemPrompt = `You extract structured data from an art gallery web page given as markdown.
First decide the page kind (gallery_main, gallery_about, event_list, event_detail, other).
Only when the page describes exactly one exhibition or event, set kind to event_detail and fill "event"; otherwise set "event" to null.
Dates use ISO 8601. Omit the offset when the page does not state one and give an IANA timezone if it can be inferred.
Use one entry in "occurrences" per explicit date range. Use absolute URLs. Never invent facts that are not on the page.`

const extractGallerySystemPrompt = `You extract facts about an art gallery from its own web pages given as markdown.
Return null for anything the pages do not state. "tags" are short lowercase descriptors of the gallery focus.
"opening_hours_text" is the opening hours exactly as written on the page.`

const openingHoursSystemPrompt = `You convert free-form gallery opening hours into weekly ranges.
weekday is 0 for Sunday through 6 for Saturday. open_minute and close_minute are minutes after local midnight.
Return one entry per open range. Days marked closed or by appointment produce no entry.`
